// franchise_service.go
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

package services

import (
	"context"
	"errors"
	"time"

	"github.com/localnerve/franchisedb/internal/metrics"
	"github.com/localnerve/franchisedb/internal/models"
	"github.com/localnerve/franchisedb/internal/repositories"
	"github.com/localnerve/franchisedb/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const franchiseEntity = "franchise"

// FranchiseService applies the franchise business rules and builds the stock report
type FranchiseService struct {
	franchises *repositories.FranchiseRepository
	products   *repositories.ProductRepository
}

func NewFranchiseService(db *gorm.DB) *FranchiseService {
	return &FranchiseService{
		franchises: repositories.NewFranchiseRepository(db),
		products:   repositories.NewProductRepository(db),
	}
}

// Create persists a franchise under its trimmed name.
// Franchise names are unique across the whole store.
func (s *FranchiseService) Create(ctx context.Context, name string) (franchise *models.Franchise, err error) {
	defer func() {
		metrics.RecordOperation(franchiseEntity, "create", err)
		logResult(ctx, "create franchise", err, zap.String("name", name))
	}()

	if name, err = normalizeName(franchiseEntity, name); err != nil {
		return nil, err
	}
	if err = s.ensureNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}
	return s.franchises.Create(ctx, name)
}

// GetByID returns nil when the franchise does not exist
func (s *FranchiseService) GetByID(ctx context.Context, id uint64) (*models.Franchise, error) {
	franchise, err := s.franchises.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return franchise, err
}

func (s *FranchiseService) GetAll(ctx context.Context) ([]models.Franchise, error) {
	return s.franchises.GetAll(ctx)
}

// Update renames a franchise. It returns nil when the franchise does not exist.
// Keeping the current name is allowed.
func (s *FranchiseService) Update(ctx context.Context, id uint64, name string) (franchise *models.Franchise, err error) {
	defer func() {
		metrics.RecordOperation(franchiseEntity, "update", err)
		logResult(ctx, "update franchise", err, zap.Uint64("id", id))
	}()

	exists, err := s.franchises.Exists(ctx, id)
	if err != nil || !exists {
		return nil, err
	}
	if name, err = normalizeName(franchiseEntity, name); err != nil {
		return nil, err
	}
	if err = s.ensureNameAvailable(ctx, name, id); err != nil {
		return nil, err
	}

	franchise, err = s.franchises.UpdateName(ctx, id, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return franchise, err
}

// Delete removes the franchise with all its branches and products.
// It returns false when the franchise does not exist.
func (s *FranchiseService) Delete(ctx context.Context, id uint64) (deleted bool, err error) {
	defer func() {
		metrics.RecordOperation(franchiseEntity, "delete", err)
		logResult(ctx, "delete franchise", err, zap.Uint64("id", id))
	}()

	return s.franchises.Delete(ctx, id)
}

// StockReport lists, for each branch of the franchise, the products holding
// the highest stock in that branch. Branches without products are omitted.
func (s *FranchiseService) StockReport(ctx context.Context, franchiseID uint64) (records []models.StockReportRecord, err error) {
	defer func() {
		metrics.RecordOperation(franchiseEntity, "report", err)
		logResult(ctx, "stock report", err, zap.Uint64("franchise_id", franchiseID))
	}()

	exists, err := s.franchises.Exists(ctx, franchiseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, types.NewNotFoundError("franchise.not_found", "Franchise with ID %d not found", franchiseID)
	}

	track := metrics.TrackStockReport()
	start := time.Now()
	records, err = s.products.MaxStockByBranch(ctx, franchiseID)
	if err != nil {
		return nil, err
	}
	track(start, len(records))

	return records, nil
}

func (s *FranchiseService) Exists(ctx context.Context, id uint64) (bool, error) {
	return s.franchises.Exists(ctx, id)
}

func (s *FranchiseService) ensureNameAvailable(ctx context.Context, name string, selfID uint64) error {
	return ensureUnique(franchiseEntity, name, selfID, func() (uint64, error) {
		existing, err := s.franchises.GetByName(ctx, name)
		if err != nil {
			return 0, err
		}
		return existing.ID, nil
	})
}
