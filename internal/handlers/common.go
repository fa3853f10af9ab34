// common.go
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
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/franchisedb/internal/logger"
	"github.com/localnerve/franchisedb/internal/types"
	"github.com/localnerve/franchisedb/internal/utils"
	"go.uber.org/zap"
)

// NameRequest is the body of every create and rename request that carries only a name
type NameRequest struct {
	Name string `json:"name" example:"Burger Place"`
}

// CreateProductRequest is the body of POST /branches/{id}/products
type CreateProductRequest struct {
	Name          string           `json:"name" example:"Cola"`
	StockQuantity *types.FlexInt64 `json:"stock_quantity" swaggertype:"integer" example:"25"`
}

// UpdateStockRequest is the body of PATCH /products/{id}/stock
type UpdateStockRequest struct {
	Stock *types.FlexInt64 `json:"stock" swaggertype:"integer" example:"40"`
}

// parseID reads a positive integer path parameter
func parseID(c *fiber.Ctx, param string) (uint64, bool) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint64(id), true
}

func invalidIDResponse(c *fiber.Ctx, param string) error {
	return utils.BadRequestResponse(c, "The "+param+" must be a positive integer", "request.validation.id")
}

// parseBody decodes the JSON body into out. It reports false when the body is malformed.
func parseBody(c *fiber.Ctx, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		logger.FromFiber(c).Debug("Rejected request body", zap.Error(err))
		return false
	}
	return true
}

func invalidBodyResponse(c *fiber.Ctx) error {
	return utils.BadRequestResponse(c, "Invalid request body", "request.validation.body")
}

// serviceErrorResponse maps a service error to its HTTP response.
// A NotFoundError is a 404 when it concerns the addressed resource and a
// 400 when it concerns a parent referenced by a create request.
func serviceErrorResponse(c *fiber.Ctx, err error, parentReference bool) error {
	if customErr, ok := types.AsCustomError(err); ok {
		switch {
		case errors.Is(customErr, types.ErrNotFound) && !parentReference:
			return utils.NotFoundResponse(c, customErr.Message, customErr.Type)
		default:
			return utils.BadRequestResponse(c, customErr.Message, customErr.Type)
		}
	}

	logger.FromFiber(c).Error("Request failed", zap.Error(err))
	return utils.ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, "server.error")
}
