// main.go
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

package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/localnerve/franchisedb/internal/config"
	"github.com/localnerve/franchisedb/internal/database"
	"github.com/localnerve/franchisedb/internal/handlers"
	"github.com/localnerve/franchisedb/internal/logger"
	"github.com/localnerve/franchisedb/internal/metrics"
	"github.com/localnerve/franchisedb/internal/middleware"
	"github.com/localnerve/franchisedb/internal/utils"
	"go.uber.org/zap"

	_ "github.com/localnerve/franchisedb/docs/api" // Swagger docs
)

// @title Franchise API
// @version 1.0.0
// @description Manage franchises, their branches and the stock of branch products
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/franchisedb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:8000
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootstrap, _ := logger.New("info", "json", config.Version)
		bootstrap.Fatal("Failed to load configuration", zap.Error(err))
	}

	if err := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, config.Version); err != nil {
		panic(err)
	}
	log := logger.GetLogger()
	defer func() { _ = log.Sync() }()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			log.Fatal("Failed to seed example data", zap.Error(err))
		}
	}

	metrics.InitMetrics(cfg.MetricsPrefix)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		AppName:      "franchisedb " + config.Version,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:X-Request-ID}\n",
	}))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowMethods:     strings.Join(cfg.CORSMethods, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID, X-Api-Version",
		AllowCredentials: !contains(cfg.CORSOrigins, "*"),
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New(cfg.MetricsPrefix)
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(middleware.VersionMiddleware())

	handlers.RegisterRoutes(app, cfg, db)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found", "route.not_found")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	address := cfg.ListenAddress()
	log.Info("Starting server", zap.String("address", address), zap.String("db_type", cfg.DBType))
	if err := app.Listen(address); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}

	log.Info("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorType := "server.error"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
		errorType = "request.error"
	} else {
		logger.FromFiber(c).Error("Unhandled error", zap.Error(err))
	}

	return utils.ErrorResponse(c, message, code, errorType)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
