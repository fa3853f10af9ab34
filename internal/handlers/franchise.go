// franchise.go
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

// FranchiseHandler handles franchise routes, including the branches of a franchise
type FranchiseHandler struct {
	Franchises *services.FranchiseService
	Branches   *services.BranchService
}

func NewFranchiseHandler(db *gorm.DB) *FranchiseHandler {
	return &FranchiseHandler{
		Franchises: services.NewFranchiseService(db),
		Branches:   services.NewBranchService(db),
	}
}

// CreateFranchise handles POST /franchises
// @Summary Create a franchise
// @Description Create a franchise. The name is trimmed and must be unique.
// @Tags Franchises
// @Accept json
// @Produce json
// @Param request body NameRequest true "Franchise name"
// @Success 201 {object} models.Franchise
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /franchises [post]
func (h *FranchiseHandler) CreateFranchise(c *fiber.Ctx) error {
	var req NameRequest
	if !parseBody(c, &req) {
		return invalidBodyResponse(c)
	}

	franchise, err := h.Franchises.Create(c.UserContext(), req.Name)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}

	return utils.SuccessResponse(c, franchise, fiber.StatusCreated)
}

// GetFranchises handles GET /franchises
// @Summary List franchises
// @Tags Franchises
// @Produce json
// @Success 200 {array} models.Franchise
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /franchises [get]
func (h *FranchiseHandler) GetFranchises(c *fiber.Ctx) error {
	franchises, err := h.Franchises.GetAll(c.UserContext())
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	return utils.SuccessResponse(c, franchises, fiber.StatusOK)
}

// GetFranchise handles GET /franchises/:id
// @Summary Get a franchise
// @Tags Franchises
// @Produce json
// @Param id path int true "Franchise ID"
// @Success 200 {object} models.Franchise
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchises/{id} [get]
func (h *FranchiseHandler) GetFranchise(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "franchise id")
	}

	franchise, err := h.Franchises.GetByID(c.UserContext(), id)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if franchise == nil {
		return franchiseNotFound(c, id)
	}

	return utils.SuccessResponse(c, franchise, fiber.StatusOK)
}

// UpdateFranchise handles PATCH /franchises/:id
// @Summary Rename a franchise
// @Tags Franchises
// @Accept json
// @Produce json
// @Param id path int true "Franchise ID"
// @Param request body NameRequest true "New franchise name"
// @Success 200 {object} models.Franchise
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchises/{id} [patch]
func (h *FranchiseHandler) UpdateFranchise(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "franchise id")
	}

	var req NameRequest
	if !parseBody(c, &req) {
		return invalidBodyResponse(c)
	}

	franchise, err := h.Franchises.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if franchise == nil {
		return franchiseNotFound(c, id)
	}

	return utils.SuccessResponse(c, franchise, fiber.StatusOK)
}

// DeleteFranchise handles DELETE /franchises/:id
// @Summary Delete a franchise
// @Description Delete a franchise together with its branches and their products
// @Tags Franchises
// @Param id path int true "Franchise ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchises/{id} [delete]
func (h *FranchiseHandler) DeleteFranchise(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "franchise id")
	}

	deleted, err := h.Franchises.Delete(c.UserContext(), id)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if !deleted {
		return franchiseNotFound(c, id)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetStockReport handles GET /franchises/:id/report
// @Summary Highest stock product per branch
// @Description For each branch of the franchise, the products holding the branch's highest stock. Ties are all listed; branches without products are omitted.
// @Tags Franchises
// @Produce json
// @Param id path int true "Franchise ID"
// @Success 200 {array} models.StockReportRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchises/{id}/report [get]
func (h *FranchiseHandler) GetStockReport(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "franchise id")
	}

	records, err := h.Franchises.StockReport(c.UserContext(), id)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}

	return utils.SuccessResponse(c, records, fiber.StatusOK)
}

// CreateBranch handles POST /franchises/:id/branches
// @Summary Add a branch to a franchise
// @Tags Branches
// @Accept json
// @Produce json
// @Param id path int true "Franchise ID"
// @Param request body NameRequest true "Branch name"
// @Success 201 {object} models.Branch
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /franchises/{id}/branches [post]
func (h *FranchiseHandler) CreateBranch(c *fiber.Ctx) error {
	franchiseID, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "franchise id")
	}

	var req NameRequest
	if !parseBody(c, &req) {
		return invalidBodyResponse(c)
	}

	branch, err := h.Branches.Create(c.UserContext(), req.Name, franchiseID)
	if err != nil {
		return serviceErrorResponse(c, err, true)
	}

	return utils.SuccessResponse(c, branch, fiber.StatusCreated)
}

// GetBranches handles GET /franchises/:id/branches
// @Summary List the branches of a franchise
// @Tags Branches
// @Produce json
// @Param id path int true "Franchise ID"
// @Success 200 {array} models.Branch
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchises/{id}/branches [get]
func (h *FranchiseHandler) GetBranches(c *fiber.Ctx) error {
	franchiseID, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "franchise id")
	}

	branches, err := h.Branches.GetByFranchise(c.UserContext(), franchiseID)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}

	return utils.SuccessResponse(c, branches, fiber.StatusOK)
}

func franchiseNotFound(c *fiber.Ctx, id uint64) error {
	return utils.NotFoundResponse(c, fmt.Sprintf("Franchise with ID %d not found", id), "franchise.not_found")
}
