package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/franchisedb/internal/config"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the info, health and resource routes on router
func RegisterRoutes(router fiber.Router, cfg *config.Config, db *gorm.DB) {
	system := &SystemHandler{Config: cfg, DB: db}
	router.Get("/", system.GetInfo)
	router.Get("/health", system.GetHealth)

	franchises := NewFranchiseHandler(db)
	router.Post("/franchises", franchises.CreateFranchise)
	router.Get("/franchises", franchises.GetFranchises)
	router.Get("/franchises/:id", franchises.GetFranchise)
	router.Patch("/franchises/:id", franchises.UpdateFranchise)
	router.Delete("/franchises/:id", franchises.DeleteFranchise)
	router.Get("/franchises/:id/report", franchises.GetStockReport)
	router.Post("/franchises/:id/branches", franchises.CreateBranch)
	router.Get("/franchises/:id/branches", franchises.GetBranches)

	branches := NewBranchHandler(db)
	router.Get("/branches", branches.GetAllBranches)
	router.Get("/branches/:id", branches.GetBranch)
	router.Patch("/branches/:id", branches.UpdateBranch)
	router.Delete("/branches/:id", branches.DeleteBranch)
	router.Post("/branches/:id/products", branches.CreateProduct)
	router.Get("/branches/:id/products", branches.GetProducts)

	products := NewProductHandler(db)
	router.Get("/products", products.GetAllProducts)
	router.Get("/products/:id", products.GetProduct)
	router.Patch("/products/:id", products.UpdateProduct)
	router.Patch("/products/:id/stock", products.UpdateStock)
	router.Delete("/products/:id", products.DeleteProduct)
}
