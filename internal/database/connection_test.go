package database

import (
	"testing"

	"github.com/localnerve/franchisedb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"
)

func TestDialectorByType(t *testing.T) {
	cases := map[string]string{
		"mysql":      "mysql",
		"mariadb":    "mysql",
		"postgres":   "postgres",
		"postgresql": "postgres",
		"sqlite":     "sqlite",
		"sqlserver":  "sqlserver",
		"mssql":      "sqlserver",
	}
	for dbType, name := range cases {
		dialector, err := Dialector(&config.Config{DBType: dbType, DBDatabase: "franchises", DBUser: "u"})
		require.NoError(t, err, dbType)
		assert.Equal(t, name, dialector.Name(), dbType)
	}

	_, err := Dialector(&config.Config{DBType: "oracle"})
	assert.Error(t, err)
}

func TestDialectorDSN(t *testing.T) {
	dialector, err := Dialector(&config.Config{
		DBType:     "mariadb",
		DBHost:     "db",
		DBUser:     "franchises",
		DBPassword: "secret",
		DBDatabase: "franchises",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"franchises:secret@tcp(db:3306)/franchises?charset=utf8mb4&parseTime=True&loc=UTC",
		dialector.(*mysql.Dialector).DSN)

	dialector, err = Dialector(&config.Config{DBType: "mysql", DatabaseURL: "u:p@tcp(h:1)/d"})
	require.NoError(t, err)
	assert.Equal(t, "u:p@tcp(h:1)/d", dialector.(*mysql.Dialector).DSN)

	dialector, err = Dialector(&config.Config{DBType: "sqlite", DBDatabase: "franchises.db"})
	require.NoError(t, err)
	assert.Equal(t, "franchises.db?_foreign_keys=1", dialector.(*sqlite.Dialector).DSN)
}

func TestWithSQLiteForeignKeys(t *testing.T) {
	assert.Equal(t, "file.db?_foreign_keys=1", withSQLiteForeignKeys("file.db"))
	assert.Equal(t, "file.db?cache=shared&_foreign_keys=1", withSQLiteForeignKeys("file.db?cache=shared"))
	assert.Equal(t, "file.db?_fk=1", withSQLiteForeignKeys("file.db?_fk=1"))
	assert.Equal(t, "file.db?_foreign_keys=0", withSQLiteForeignKeys("file.db?_foreign_keys=0"))
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, gormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, gormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, gormLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel("warn"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel(""))
}

func TestPortOrDefault(t *testing.T) {
	assert.Equal(t, "5432", portOrDefault("", "5432"))
	assert.Equal(t, "6543", portOrDefault("6543", "5432"))
}
