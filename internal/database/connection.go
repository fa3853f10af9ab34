package database

import (
	"fmt"
	"strings"

	"github.com/localnerve/franchisedb/internal/config"
	"github.com/localnerve/franchisedb/internal/logger"
	"github.com/localnerve/franchisedb/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialector builds the GORM dialector for the configured DB_TYPE.
// DATABASE_URL, when set, is passed to the driver unchanged.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBHost,
				portOrDefault(cfg.DBPort, "3306"),
				cfg.DBDatabase,
			)
		}
		return mysql.Open(dsn), nil

	case "postgres", "postgresql":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				cfg.DBHost,
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBDatabase,
				portOrDefault(cfg.DBPort, "5432"),
			)
		}
		return postgres.Open(dsn), nil

	case "sqlite":
		// For SQLite, DBDatabase is the file path. Foreign keys are off by default.
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = cfg.DBDatabase
		}
		return sqlite.Open(withSQLiteForeignKeys(dsn)), nil

	case "sqlserver", "mssql":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBHost,
				portOrDefault(cfg.DBPort, "1433"),
				cfg.DBDatabase,
			)
		}
		return sqlserver.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

// Connect establishes a database connection based on the configured DB_TYPE
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := Open(dialector, gormLogLevel(cfg.DBLogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(max(cfg.DBConnectionLimit/2, 1))

	logger.GetLogger().Info("Connected to database",
		zap.String("db_type", cfg.DBType),
		zap.String("database", cfg.DBDatabase))

	return db, nil
}

// Open opens a GORM session on the dialector. SQL logging goes through zap.
// Store errors are translated to GORM sentinels (gorm.ErrDuplicatedKey,
// gorm.ErrForeignKeyViolated).
func Open(dialector gorm.Dialector, level gormlogger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(level),
		TranslateError: true,
	})
}

// AutoMigrate runs automatic migrations for all models. Names compare
// case-sensitively on every dialect.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Franchise{},
		&models.Branch{},
		&models.Product{},
	); err != nil {
		return err
	}
	return caseSensitiveNames(db)
}

// Ping checks that the database is reachable
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func portOrDefault(port, defaultPort string) string {
	if port == "" {
		return defaultPort
	}
	return port
}

func withSQLiteForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
