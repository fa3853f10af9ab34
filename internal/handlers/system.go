package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/franchisedb/internal/config"
	"github.com/localnerve/franchisedb/internal/services"
	"gorm.io/gorm"
)

// InfoResponse describes the service at GET /
type InfoResponse struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Docs        string `json:"docs"`
}

// SystemHandler handles the service info and health routes
type SystemHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// GetInfo handles GET /
// @Summary Service information
// @Tags System
// @Produce json
// @Success 200 {object} InfoResponse
// @Router / [get]
func (h *SystemHandler) GetInfo(c *fiber.Ctx) error {
	return c.JSON(InfoResponse{
		Message:     "Franchise management API",
		Version:     config.Version,
		Description: "Manage franchises, their branches and branch product stock",
		Docs:        "/swagger/index.html",
	})
}

// GetHealth handles GET /health
// @Summary Health check
// @Description Reports whether the database is reachable
// @Tags System
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *SystemHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB)
	status := fiber.StatusOK
	if !result.Healthy() {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
