package models

// StockReportRecord is one row of the max-stock-per-branch report: a product
// holding (or tied for) the highest stock quantity in its branch.
// It is derived from a query and never persisted.
type StockReportRecord struct {
	ProductID     uint64 `gorm:"column:product_id" json:"product_id"`
	ProductName   string `gorm:"column:product_name" json:"product_name"`
	StockQuantity int    `gorm:"column:stock_quantity" json:"stock_quantity"`
	BranchID      uint64 `gorm:"column:branch_id" json:"branch_id"`
	BranchName    string `gorm:"column:branch_name" json:"branch_name"`
}
