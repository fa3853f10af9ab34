package testhelpers

import (
	"testing"

	"github.com/localnerve/franchisedb/internal/models"
	"gorm.io/gorm"
)

// CreateTestFranchise inserts a franchise directly, bypassing the services
func CreateTestFranchise(t *testing.T, db *gorm.DB, name string) *models.Franchise {
	t.Helper()
	franchise := models.Franchise{Name: name}
	if err := db.Create(&franchise).Error; err != nil {
		t.Fatalf("Failed to create franchise %s: %v", name, err)
	}
	return &franchise
}

// CreateTestBranch inserts a branch under a franchise
func CreateTestBranch(t *testing.T, db *gorm.DB, franchiseID uint64, name string) *models.Branch {
	t.Helper()
	branch := models.Branch{Name: name, FranchiseID: franchiseID}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("Failed to create branch %s: %v", name, err)
	}
	return &branch
}

// CreateTestProduct inserts a product with the given stock under a branch
func CreateTestProduct(t *testing.T, db *gorm.DB, branchID uint64, name string, stock int) *models.Product {
	t.Helper()
	product := models.Product{Name: name, StockQuantity: stock, BranchID: branchID}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product %s: %v", name, err)
	}
	return &product
}

// CountRows counts the rows of a model table
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
