package models

import (
	"time"
)

// NameMaxLength is the column size of every name field
const NameMaxLength = 255

// Franchise is the top level entity. Its name is unique across all franchises.
type Franchise struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_franchises_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Branches  []Branch  `gorm:"foreignKey:FranchiseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Branch belongs to one franchise. Its name is unique within that franchise.
type Branch struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:idx_branches_franchise_name,priority:2" json:"name"`
	FranchiseID uint64    `gorm:"not null;uniqueIndex:idx_branches_franchise_name,priority:1" json:"franchise_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Products    []Product `gorm:"foreignKey:BranchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Product belongs to one branch. Its name is unique within that branch and
// its stock quantity is never negative.
type Product struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:255;not null;uniqueIndex:idx_products_branch_name,priority:2" json:"name"`
	StockQuantity int       `gorm:"not null;default:0;check:chk_products_stock_quantity,stock_quantity >= 0" json:"stock_quantity"`
	BranchID      uint64    `gorm:"not null;uniqueIndex:idx_products_branch_name,priority:1" json:"branch_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name for Franchise
func (Franchise) TableName() string {
	return "franchises"
}

// TableName overrides the table name for Branch
func (Branch) TableName() string {
	return "branches"
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}
