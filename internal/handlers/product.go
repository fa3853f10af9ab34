// product.go
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

// ProductHandler handles product routes
type ProductHandler struct {
	Products *services.ProductService
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{Products: services.NewProductService(db)}
}

// GetAllProducts handles GET /products
// @Summary List all products
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /products [get]
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	products, err := h.Products.GetAll(c.UserContext())
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	return utils.SuccessResponse(c, products, fiber.StatusOK)
}

// GetProduct handles GET /products/:id
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "product id")
	}

	product, err := h.Products.GetByID(c.UserContext(), id)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if product == nil {
		return productNotFound(c, id)
	}

	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// UpdateProduct handles PATCH /products/:id
// @Summary Rename a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body NameRequest true "New product name"
// @Success 200 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [patch]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "product id")
	}

	var req NameRequest
	if !parseBody(c, &req) {
		return invalidBodyResponse(c)
	}

	product, err := h.Products.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if product == nil {
		return productNotFound(c, id)
	}

	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// UpdateStock handles PATCH /products/:id/stock
// @Summary Set the stock of a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body UpdateStockRequest true "New stock quantity"
// @Success 200 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "product id")
	}

	var req UpdateStockRequest
	if !parseBody(c, &req) {
		return invalidBodyResponse(c)
	}
	if req.Stock == nil {
		return utils.BadRequestResponse(c, "The stock field is required", "product.validation.stock")
	}

	product, err := h.Products.UpdateStock(c.UserContext(), id, req.Stock.Int())
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if product == nil {
		return productNotFound(c, id)
	}

	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// DeleteProduct handles DELETE /products/:id
// @Summary Delete a product
// @Tags Products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidIDResponse(c, "product id")
	}

	deleted, err := h.Products.Delete(c.UserContext(), id)
	if err != nil {
		return serviceErrorResponse(c, err, false)
	}
	if !deleted {
		return productNotFound(c, id)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func productNotFound(c *fiber.Ctx, id uint64) error {
	return utils.NotFoundResponse(c, fmt.Sprintf("Product with ID %d not found", id), "product.not_found")
}
