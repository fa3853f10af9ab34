package main

import (
	"fmt"
	"log"

	"github.com/localnerve/franchisedb/internal/database"
	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"
)

// Prints the DDL AutoMigrate produces for the franchise, branch and product
// tables, with their unique indexes and foreign keys.
func main() {
	db, err := database.Open(sqlite.Open(":memory:?_foreign_keys=1"), gormlogger.Silent)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&schema)
		fmt.Println(schema)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, index := range indexes {
			fmt.Println(index)
		}
	}
}
