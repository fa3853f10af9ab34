package handlers_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/franchisedb/internal/models"
	"github.com/localnerve/franchisedb/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFranchise(t *testing.T) {
	app, db := setupApp(t)

	resp := doRequest(t, app, "POST", "/franchises", `{"name":"Burger Place"}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var created models.Franchise
	testhelpers.ParseJSON(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Burger Place", created.Name)

	resp = doRequest(t, app, "POST", "/franchises", `{"name":" Burger Place "}`)
	assertError(t, resp, fiber.StatusBadRequest, "franchise.conflict")

	resp = doRequest(t, app, "POST", "/franchises", `{"name":"   "}`)
	assertError(t, resp, fiber.StatusBadRequest, "franchise.validation.name")

	resp = doRequest(t, app, "POST", "/franchises", `{}`)
	assertError(t, resp, fiber.StatusBadRequest, "franchise.validation.name")

	long := strings.Repeat("n", models.NameMaxLength+1)
	resp = doRequest(t, app, "POST", "/franchises", `{"name":"`+long+`"}`)
	assertError(t, resp, fiber.StatusBadRequest, "franchise.validation.name")

	assert.Equal(t, int64(1), testhelpers.CountRows(t, db, &models.Franchise{}))
}

func TestGetFranchises(t *testing.T) {
	app, db := setupApp(t)

	resp := doRequest(t, app, "GET", "/franchises", "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var empty []models.Franchise
	testhelpers.ParseJSON(t, resp, &empty)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first := testhelpers.CreateTestFranchise(t, db, "First")
	testhelpers.CreateTestFranchise(t, db, "Second")

	resp = doRequest(t, app, "GET", "/franchises", "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var all []models.Franchise
	testhelpers.ParseJSON(t, resp, &all)
	assert.Len(t, all, 2)

	resp = doRequest(t, app, "GET", fmt.Sprintf("/franchises/%d", first.ID), "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var one models.Franchise
	testhelpers.ParseJSON(t, resp, &one)
	assert.Equal(t, "First", one.Name)

	resp = doRequest(t, app, "GET", "/franchises/999", "")
	assertError(t, resp, fiber.StatusNotFound, "franchise.not_found")
}

func TestUpdateFranchise(t *testing.T) {
	app, db := setupApp(t)
	first := testhelpers.CreateTestFranchise(t, db, "First")
	testhelpers.CreateTestFranchise(t, db, "Second")
	url := fmt.Sprintf("/franchises/%d", first.ID)

	resp := doRequest(t, app, "PATCH", url, `{"name":"Renamed"}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var updated models.Franchise
	testhelpers.ParseJSON(t, resp, &updated)
	assert.Equal(t, "Renamed", updated.Name)

	resp = doRequest(t, app, "PATCH", url, `{"name":"Renamed"}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = doRequest(t, app, "PATCH", url, `{"name":"Second"}`)
	assertError(t, resp, fiber.StatusBadRequest, "franchise.conflict")

	resp = doRequest(t, app, "PATCH", url, `{"name":""}`)
	assertError(t, resp, fiber.StatusBadRequest, "franchise.validation.name")

	resp = doRequest(t, app, "PATCH", "/franchises/999", `{"name":"Ghost"}`)
	assertError(t, resp, fiber.StatusNotFound, "franchise.not_found")
}

func TestDeleteFranchise(t *testing.T) {
	app, db := setupApp(t)
	franchise := testhelpers.CreateTestFranchise(t, db, "Doomed")
	url := fmt.Sprintf("/franchises/%d", franchise.ID)

	resp := doRequest(t, app, "DELETE", url, "")
	testhelpers.AssertStatus(t, resp, fiber.StatusNoContent)

	resp = doRequest(t, app, "DELETE", url, "")
	assertError(t, resp, fiber.StatusNotFound, "franchise.not_found")
}

func TestStockReportTies(t *testing.T) {
	app, db := setupApp(t)
	franchise := testhelpers.CreateTestFranchise(t, db, "F1")
	b1 := testhelpers.CreateTestBranch(t, db, franchise.ID, "B1")
	b2 := testhelpers.CreateTestBranch(t, db, franchise.ID, "B2")
	testhelpers.CreateTestBranch(t, db, franchise.ID, "Empty")
	testhelpers.CreateTestProduct(t, db, b1.ID, "A", 100)
	testhelpers.CreateTestProduct(t, db, b1.ID, "C", 100)
	testhelpers.CreateTestProduct(t, db, b1.ID, "D", 50)
	testhelpers.CreateTestProduct(t, db, b2.ID, "E", 3)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/franchises/%d/report", franchise.ID), "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var report []map[string]interface{}
	testhelpers.ParseJSON(t, resp, &report)
	require.Len(t, report, 3)

	names := make([]string, 0, len(report))
	for _, record := range report {
		names = append(names, record["product_name"].(string))
		assert.Contains(t, record, "branch_name")
		assert.Contains(t, record, "branch_id")
		assert.Contains(t, record, "product_id")
		assert.Contains(t, record, "stock_quantity")
	}
	assert.ElementsMatch(t, []string{"A", "C", "E"}, names)
}

func TestStockReportEmptyFranchise(t *testing.T) {
	app, db := setupApp(t)
	franchise := testhelpers.CreateTestFranchise(t, db, "F1")

	resp := doRequest(t, app, "GET", fmt.Sprintf("/franchises/%d/report", franchise.ID), "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var report []models.StockReportRecord
	testhelpers.ParseJSON(t, resp, &report)
	assert.NotNil(t, report)
	assert.Empty(t, report)
}

func TestFranchiseBranches(t *testing.T) {
	app, db := setupApp(t)
	franchise := testhelpers.CreateTestFranchise(t, db, "F1")
	other := testhelpers.CreateTestFranchise(t, db, "F2")
	url := fmt.Sprintf("/franchises/%d/branches", franchise.ID)

	resp := doRequest(t, app, "POST", url, `{"name":" Centro "}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)
	var branch models.Branch
	testhelpers.ParseJSON(t, resp, &branch)
	assert.Equal(t, "Centro", branch.Name)
	assert.Equal(t, franchise.ID, branch.FranchiseID)

	resp = doRequest(t, app, "POST", url, `{"name":"Centro"}`)
	assertError(t, resp, fiber.StatusBadRequest, "branch.conflict")

	resp = doRequest(t, app, "POST", fmt.Sprintf("/franchises/%d/branches", other.ID), `{"name":"Centro"}`)
	testhelpers.AssertStatus(t, resp, fiber.StatusCreated)

	resp = doRequest(t, app, "POST", "/franchises/999/branches", `{"name":"Orphan"}`)
	assertError(t, resp, fiber.StatusBadRequest, "franchise.not_found")

	resp = doRequest(t, app, "GET", url, "")
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	var branches []models.Branch
	testhelpers.ParseJSON(t, resp, &branches)
	assert.Len(t, branches, 1)

	resp = doRequest(t, app, "GET", "/franchises/999/branches", "")
	assertError(t, resp, fiber.StatusNotFound, "franchise.not_found")
}
