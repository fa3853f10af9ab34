// product_repository.go
//
// A franchise, branch and product stock data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of franchisedb.
// franchisedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// franchisedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with franchisedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package repositories

import (
	"context"

	"github.com/localnerve/franchisedb/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ProductRepository is data access for products and the stock report
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, name string, stockQuantity int, branchID uint64) (*models.Product, error) {
	product := models.Product{Name: name, StockQuantity: stockQuantity, BranchID: branchID}
	if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, translateError(err, "product")
	}
	return &product, nil
}

// GetByID returns ErrNotFound when the product does not exist
func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translateError(err, "product")
	}
	return &product, nil
}

func (r *ProductRepository) GetByBranchID(ctx context.Context, branchID uint64) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByNameAndBranch returns ErrNotFound when the branch has no product with this name
func (r *ProductRepository) GetByNameAndBranch(ctx context.Context, name string, branchID uint64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("name = ? AND branch_id = ?", name, branchID).
		First(&product).Error
	if err != nil {
		return nil, translateError(err, "product")
	}
	return &product, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateName renames the product and refreshes updated_at
func (r *ProductRepository) UpdateName(ctx context.Context, id uint64, name string) (*models.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(product).Update("name", name).Error; err != nil {
		return nil, translateError(err, "product")
	}
	return product, nil
}

// UpdateStock sets the stock quantity and refreshes updated_at
func (r *ProductRepository) UpdateStock(ctx context.Context, id uint64, stockQuantity int) (*models.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(product).Update("stock_quantity", stockQuantity).Error; err != nil {
		return nil, translateError(err, "product")
	}
	return product, nil
}

// Delete reports false when the product did not exist
func (r *ProductRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ProductRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepository) BelongsToBranch(ctx context.Context, id, branchID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND branch_id = ?", id, branchID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MaxStockByBranch returns, for every branch of the franchise that has
// products, each product whose stock equals the branch maximum. Ties are
// all returned. Rows are ordered by branch id, then product id.
func (r *ProductRepository) MaxStockByBranch(ctx context.Context, franchiseID uint64) ([]models.StockReportRecord, error) {
	db := r.db.WithContext(ctx)

	branchIDs := db.Model(&models.Branch{}).Select("id").Where("franchise_id = ?", franchiseID)
	maxStock := db.Model(&models.Product{}).
		Select("branch_id, MAX(stock_quantity) AS max_stock").
		Where("branch_id IN (?)", branchIDs).
		Group("branch_id")

	records := []models.StockReportRecord{}
	err := db.Clauses(hints.Comment("select", "max_stock_per_branch")).
		Table("products").
		Select("products.id AS product_id, products.name AS product_name, products.stock_quantity AS stock_quantity, branches.id AS branch_id, branches.name AS branch_name").
		Joins("JOIN branches ON branches.id = products.branch_id").
		Joins("JOIN (?) AS ms ON ms.branch_id = products.branch_id AND ms.max_stock = products.stock_quantity", maxStock).
		Where("branches.franchise_id = ?", franchiseID).
		Order("branches.id, products.id").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
