// branch.go
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

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/franchisedb/internal/services"
	"github.com/localnerve/franchisedb/internal/utils"
	"gorm.io/gorm"
)

// BranchHandler handles branch routes, including the products of a branch
type BranchHandler struct {
	Branches *services.BranchService
	Products *services.ProductService
}

func NewBranchHandler(db *gorm.DB) *BranchHandler {
	return &BranchHandler{
		Branches: services.NewBranchService(db),
		Products: services.NewProductService(db),
	}
}

// GetAllBranches handles GET /branches
// @Summary List all branches
// @Tags Branches
// @Produce json
// @Success 200 {array} models.Branch
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /branches [get]
func (h *BranchHandler) GetAllBranches(c *fiber.Ctx) error {
	branches, err := h.Branches.GetAll(c.UserContext())
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	return utils.SuccessResponse(c, branches, fiber.StatusOK)
}

// GetBranch handles GET /branches/:id
// @Summary Get a branch
// @Tags Branches
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {object} models.Branch
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /branches/{id} [get]
func (h *BranchHandler) GetBranch(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "branch id")
	}

	branch, err := h.Branches.GetByID(c.UserContext(), id)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if branch == nil {
		return branchNotFound(c, id)
	}

	return utils.SuccessResponse(c, branch, fiber.StatusOK)
}

// UpdateBranch handles PATCH /branches/:id
// @Summary Rename a branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param id path int true "Branch ID"
// @Param request body NameRequest true "New branch name"
// @Success 200 {object} models.Branch
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /branches/{id} [patch]
func (h *BranchHandler) UpdateBranch(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "branch id")
	}

	var req NameRequest
	if !parseBody(c, &req) {
		return invalidBodyResponse(c)
	}

	branch, err := h.Branches.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if branch == nil {
		return branchNotFound(c, id)
	}

	return utils.SuccessResponse(c, branch, fiber.StatusOK)
}

// DeleteBranch handles DELETE /branches/:id
// @Summary Delete a branch
// @Description Delete a branch together with its products
// @Tags Branches
// @Param id path int true "Branch ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /branches/{id} [delete]
func (h *BranchHandler) DeleteBranch(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "branch id")
	}

	deleted, err := h.Branches.Delete(c.UserContext(), id)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if !deleted {
		return branchNotFound(c, id)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateProduct handles POST /branches/:id/products
// @Summary Add a product to a branch
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Branch ID"
// @Param request body CreateProductRequest true "Product name and initial stock"
// @Success 201 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /branches/{id}/products [post]
func (h *BranchHandler) CreateProduct(c *fiber.Ctx) error {
	branchID, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "branch id")
	}

	var req CreateProductRequest
	if !parseBody(c, &req) {
		return invalidBodyResponse(c)
	}
	if req.StockQuantity == nil {
		return utils.BadRequestResponse(c, "The stock_quantity field is required", "product.validation.stock")
	}

	product, err := h.Products.Create(c.UserContext(), req.Name, req.StockQuantity.Int(), branchID)
	if err != nil {
		return serviceErrorResponse(c, err, true)
	}

	return utils.SuccessResponse(c, product, fiber.StatusCreated)
}

// GetProducts handles GET /branches/:id/products
// @Summary List the products of a branch
// @Tags Products
// @Produce json
// @Param id path int true "Branch ID"
// @Success 200 {array} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /branches/{id}/products [get]
func (h *BranchHandler) GetProducts(c *fiber.Ctx) error {
	branchID, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "branch id")
	}

	products, err := h.Products.GetByBranch(c.UserContext(), branchID)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}

	return utils.SuccessResponse(c, products, fiber.StatusOK)
}

func branchNotFound(c *fiber.Ctx, id uint64) error {
	return utils.NotFoundResponse(c, fmt.Sprintf("Branch with ID %d not found", id), "branch.not_found")
}
