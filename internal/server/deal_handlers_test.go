package server

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/rratchapol/backend/internal/config"
	"github.com/rratchapol/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDealBody(buyerID, productID uint) map[string]any {
	return map[string]any{
		"buyer_id":   buyerID,
		"product_id": productID,
		"qty":        2,
		"deal_date":  "2026-08-15",
		"status":     "pending",
	}
}

func TestDealCRUD(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	buyer := mustCreateUser(t, db, "buyer@example.com", models.UserRoleBuyer)
	seller := mustCreateUser(t, db, "seller@example.com", models.UserRoleSeller)
	product := mustCreateProduct(t, db, seller.ID, "Jacket")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/deals",
		validDealBody(buyer.ID, product.ID)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody(t, resp)
	assert.Equal(t, "pending", created["status"])
	dealID := strconv.Itoa(int(created["id"].(float64)))

	body := validDealBody(buyer.ID, product.ID)
	body["status"] = "paid"
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/deals/"+dealID, body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	assert.Equal(t, "paid", updated["status"])

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, "/api/deals/"+dealID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	deleted := decodeBody(t, resp)
	assert.Equal(t, "Deal deleted successfully", deleted["message"])
}

func TestCreateDeal_Validation(t *testing.T) {
	app, _ := setupTestApp(t, config.DeletePolicyIgnore)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/deals", map[string]any{
		"buyer_id":  1,
		"deal_date": "not-a-date",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "product_id")
	assert.Contains(t, errs, "qty")
	assert.Contains(t, errs, "deal_date")
	assert.Contains(t, errs, "status")
}

func TestGetDealsByBuyer(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	buyer := mustCreateUser(t, db, "buyer@example.com", models.UserRoleBuyer)
	other := mustCreateUser(t, db, "other@example.com", models.UserRoleBuyer)
	seller := mustCreateUser(t, db, "seller@example.com", models.UserRoleSeller)
	product := mustCreateProduct(t, db, seller.ID, "Jacket")

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Deal{
			BuyerID: buyer.ID, ProductID: product.ID, Qty: 1, Status: "pending",
		}).Error)
	}
	require.NoError(t, db.Create(&models.Deal{
		BuyerID: other.ID, ProductID: product.ID, Qty: 1, Status: "pending",
	}).Error)

	resp, err := app.Test(jsonRequest(t, http.MethodGet,
		"/api/deals/"+strconv.Itoa(int(buyer.ID)), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	deals := decodeArray(t, resp)
	assert.Len(t, deals, 2)
}

func TestGetDealsByBuyer_EmptyArray(t *testing.T) {
	app, _ := setupTestApp(t, config.DeletePolicyIgnore)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/deals/555", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	deals := decodeArray(t, resp)
	assert.Empty(t, deals)
}

func TestUpdateDeal_NotFound(t *testing.T) {
	app, _ := setupTestApp(t, config.DeletePolicyIgnore)

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/deals/999",
		validDealBody(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestListDeals(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	buyer := mustCreateUser(t, db, "buyer@example.com", models.UserRoleBuyer)
	require.NoError(t, db.Create(&models.Deal{
		BuyerID: buyer.ID, ProductID: 1, Qty: 1, Status: "pending",
	}).Error)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/deals", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	deals := decodeArray(t, resp)
	assert.Len(t, deals, 1)
}
