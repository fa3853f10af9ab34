package database

import (
	"fmt"
	"strings"

	"github.com/localnerve/franchisedb/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	mysqlNameCollation     = "utf8mb4_bin"
	sqlserverNameCollation = "Latin1_General_100_CS_AS"
)

// nameColumn is a name column and the unique index that covers it
type nameColumn struct {
	table   string
	index   string
	columns string
}

var nameColumns = []nameColumn{
	{table: "franchises", index: "idx_franchises_name", columns: "name"},
	{table: "branches", index: "idx_branches_franchise_name", columns: "franchise_id, name"},
	{table: "products", index: "idx_products_branch_name", columns: "branch_id, name"},
}

// caseSensitiveNames gives the name columns a case-sensitive collation on
// stores whose default ignores case (MySQL/MariaDB, SQL Server), so lookups
// and unique indexes compare names exactly. PostgreSQL and SQLite compare
// exactly already.
func caseSensitiveNames(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "mysql":
		return collateNames(db, mysqlCollation, mysqlCollate)
	case "sqlserver":
		return collateNames(db, sqlserverCollation, sqlserverCollate)
	default:
		return nil
	}
}

func collateNames(db *gorm.DB, current func(*gorm.DB, string) (string, error), collate func(*gorm.DB, nameColumn) error) error {
	for _, col := range nameColumns {
		collation, err := current(db, col.table)
		if err != nil {
			return fmt.Errorf("failed to read collation of %s.name: %w", col.table, err)
		}
		if isCaseSensitive(collation) {
			continue
		}
		if err := collate(db, col); err != nil {
			return fmt.Errorf("failed to collate %s.name: %w", col.table, err)
		}
		logger.GetLogger().Info("Name column made case-sensitive",
			zap.String("table", col.table),
			zap.String("previous_collation", collation))
	}
	return nil
}

func mysqlCollation(db *gorm.DB, table string) (string, error) {
	var collation string
	err := db.Raw(
		"SELECT COLLATION_NAME FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = 'name'",
		table,
	).Row().Scan(&collation)
	return collation, err
}

// MySQL rebuilds the covering index itself
func mysqlCollate(db *gorm.DB, col nameColumn) error {
	return db.Exec(fmt.Sprintf(
		"ALTER TABLE %s MODIFY name VARCHAR(255) CHARACTER SET utf8mb4 COLLATE %s NOT NULL",
		col.table, mysqlNameCollation,
	)).Error
}

func sqlserverCollation(db *gorm.DB, table string) (string, error) {
	var collation string
	err := db.Raw(
		"SELECT collation_name FROM sys.columns WHERE object_id = OBJECT_ID(?) AND name = 'name'",
		table,
	).Row().Scan(&collation)
	return collation, err
}

// SQL Server refuses to alter an indexed column, so the unique index is
// dropped and rebuilt around the change.
func sqlserverCollate(db *gorm.DB, col nameColumn) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf("DROP INDEX %s ON %s", col.index, col.table)).Error; err != nil {
			return err
		}
		if err := tx.Exec(fmt.Sprintf(
			"ALTER TABLE %s ALTER COLUMN name NVARCHAR(255) COLLATE %s NOT NULL",
			col.table, sqlserverNameCollation,
		)).Error; err != nil {
			return err
		}
		return tx.Exec(fmt.Sprintf(
			"CREATE UNIQUE INDEX %s ON %s (%s)",
			col.index, col.table, col.columns,
		)).Error
	})
}

// isCaseSensitive reports whether a MySQL or SQL Server collation name
// compares case exactly
func isCaseSensitive(collation string) bool {
	c := strings.ToLower(collation)
	return strings.HasSuffix(c, "_bin") || strings.HasSuffix(c, "_bin2") ||
		strings.HasSuffix(c, "_cs") || strings.Contains(c, "_cs_")
}
