package handlers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/franchisedb/internal/config"
	"github.com/localnerve/franchisedb/internal/handlers"
	"github.com/localnerve/franchisedb/internal/middleware"
	"github.com/localnerve/franchisedb/internal/models"
	"github.com/localnerve/franchisedb/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app with every route over a fresh in-memory database
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)

	app := fiber.New()
	app.Use(middleware.RequestLogger(zap.NewNop()))
	handlers.RegisterRoutes(app, &config.Config{DBType: "sqlite"}, db)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, url, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err, "Failed to execute request %s %s", method, url)
	return resp
}

func assertError(t *testing.T, resp *http.Response, status int, errorType string) {
	t.Helper()
	testhelpers.AssertStatus(t, resp, status)
	var body testhelpers.ErrorBody
	testhelpers.ParseJSON(t, resp, &body)
	assert.Equal(t, status, body.Status)
	assert.False(t, body.Ok)
	assert.NotEmpty(t, body.Message)
	assert.NotEmpty(t, body.URL)
	if errorType != "" {
		assert.Equal(t, errorType, body.Type)
	}
}

func TestInfoAndHealth(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, "GET", "/", "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var info handlers.InfoResponse
	testhelpers.ParseJSON(t, resp, &info)
	assert.Equal(t, config.Version, info.Version)
	assert.Equal(t, "/swagger/index.html", info.Docs)

	resp = doRequest(t, app, "GET", "/health", "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var health map[string]interface{}
	testhelpers.ParseJSON(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "connected", health["database"])
}

func TestInvalidPathIDs(t *testing.T) {
	app, _ := setupApp(t)

	for _, url := range []string{
		"/franchises/abc",
		"/franchises/0",
		"/franchises/-3",
		"/branches/1.5",
		"/products/x",
		"/franchises/abc/report",
	} {
		resp := doRequest(t, app, "GET", url, "")
		assertError(t, resp, fiber.StatusBadRequest, "request.validation.id")
	}
}

func TestMalformedBody(t *testing.T) {
	app, db := setupApp(t)
	franchise := testhelpers.CreateTestFranchise(t, db, "F1")

	resp := doRequest(t, app, "POST", "/franchises", `{"name":`)
	assertError(t, resp, fiber.StatusBadRequest, "request.validation.body")

	resp = doRequest(t, app, "PATCH", fmt.Sprintf("/franchises/%d", franchise.ID), `not json`)
	assertError(t, resp, fiber.StatusBadRequest, "request.validation.body")
}

func TestUnknownErrorTypeIsHidden(t *testing.T) {
	app, db := setupApp(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := doRequest(t, app, "GET", "/franchises", "")
	assertError(t, resp, fiber.StatusInternalServerError, "server.error")

	resp = doRequest(t, app, "GET", "/health", "")
	testhelpers.AssertStatus(t, resp, fiber.StatusServiceUnavailable)
}

func TestEndToEndScenario(t *testing.T) {
	app, db := setupApp(t)

	resp := doRequest(t, app, "POST", "/franchises", `{"name":"  F1  "}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var franchise models.Franchise
	testhelpers.ParseJSON(t, resp, &franchise)
	assert.Equal(t, "F1", franchise.Name)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/franchises/%d/branches", franchise.ID), `{"name":"B1"}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var branch models.Branch
	testhelpers.ParseJSON(t, resp, &branch)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/branches/%d/products", branch.ID), `{"name":"P1","stock_quantity":50}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var p1 models.Product
	testhelpers.ParseJSON(t, resp, &p1)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/branches/%d/products", branch.ID), `{"name":"P2","stock_quantity":"90"}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var p2 models.Product
	testhelpers.ParseJSON(t, resp, &p2)
	assert.Equal(t, 90, p2.StockQuantity)

	reportURL := fmt.Sprintf("/franchises/%d/report", franchise.ID)
	resp = doRequest(t, app, "GET", reportURL, "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var report []models.StockReportRecord
	testhelpers.ParseJSON(t, resp, &report)
	require.Len(t, report, 1)
	assert.Equal(t, models.StockReportRecord{
		ProductID: p2.ID, ProductName: "P2", StockQuantity: 90, BranchID: branch.ID, BranchName: "B1",
	}, report[0])

	resp = doRequest(t, app, "PATCH", fmt.Sprintf("/products/%d/stock", p1.ID), `{"stock":95}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = doRequest(t, app, "GET", reportURL, "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	report = nil
	testhelpers.ParseJSON(t, resp, &report)
	require.Len(t, report, 1)
	assert.Equal(t, p1.ID, report[0].ProductID)
	assert.Equal(t, 95, report[0].StockQuantity)

	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/franchises/%d", franchise.ID), "")
	testhelpers.AssertStatus(t, resp, fiber.StatusNoContent)
	testhelpers.AssertNoContent(t, resp)

	assert.Zero(t, testhelpers.CountRows(t, db, &models.Branch{}))
	assert.Zero(t, testhelpers.CountRows(t, db, &models.Product{}))

	resp = doRequest(t, app, "GET", reportURL, "")
	assertError(t, resp, fiber.StatusNotFound, "franchise.not_found")
}

func TestNotFoundRoute(t *testing.T) {
	app, _ := setupApp(t)

	resp := doRequest(t, app, "GET", "/nowhere", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
