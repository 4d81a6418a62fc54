package FiberConfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Inventra/Models"
	"Inventra/middleware"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	err = db.AutoMigrate(
		&Models.User{}, &Models.Vendor{}, &Models.Item{},
		&Models.PurchaseInvoice{}, &Models.PurchaseInvoiceItem{},
		&Models.IssueBill{}, &Models.IssueBillItem{},
		&Models.StockSummary{}, &Models.Bus{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	Models.DB = db

	app := fiber.New()
	SetupRoutes(app, db)
	return app
}

func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()

	user := Models.User{Name: "Admin", Email: "admin@test.local", Password: []byte("x"), Permission: 4}
	if err := Models.DB.Create(&user).Error; err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(user.Id)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := claims.SignedString([]byte(middleware.SecretKey))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return &http.Cookie{Name: "jwt", Value: token}
}

func doJSON(t *testing.T, app *fiber.App, cookie *http.Cookie, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	decoded := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding %s %s response: %v", method, path, err)
	}
	return resp, decoded
}

func TestCurrentStockRoutes(t *testing.T) {
	app := setupTestApp(t)
	cookie := adminCookie(t)

	item := Models.Item{Name: "Brake Pad", Code: "BP-01", HeadUnit: "box", SubUnit: "piece"}
	if err := Models.DB.Create(&item).Error; err != nil {
		t.Fatalf("creating item: %v", err)
	}
	Models.DB.Create(&Models.StockSummary{
		ItemID: item.ID, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ClosingMain: 5, ClosingSub: 2, ClosingTotal: 7,
	})
	Models.DB.Create(&Models.StockSummary{
		ItemID: item.ID, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ClosingMain: 8, ClosingSub: 1, ClosingTotal: 9,
	})

	resp, body := doJSON(t, app, cookie, "GET", fmt.Sprintf("/api/stock/%d/current", item.ID), nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("current stock status = %d, body %v", resp.StatusCode, body)
	}
	if body["main"] != 8.0 || body["sub"] != 1.0 || body["total"] != 9.0 {
		t.Errorf("current stock = main %v sub %v total %v, want 8/1/9", body["main"], body["sub"], body["total"])
	}

	resp, body = doJSON(t, app, cookie, "GET", fmt.Sprintf("/api/stock/%d/summaries", item.ID), nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("summaries status = %d, body %v", resp.StatusCode, body)
	}
	if rows, ok := body["data"].([]interface{}); !ok || len(rows) != 2 {
		t.Errorf("summaries data = %v, want 2 rows", body["data"])
	}
}

func TestCreateIssueBillJointOverIssue(t *testing.T) {
	app := setupTestApp(t)
	cookie := adminCookie(t)

	item := Models.Item{Name: "Engine Oil", Code: "OIL-01", HeadUnit: "carton", SubUnit: "litre"}
	if err := Models.DB.Create(&item).Error; err != nil {
		t.Fatalf("creating item: %v", err)
	}
	Models.DB.Create(&Models.StockSummary{
		ItemID: item.ID, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ClosingMain: 5, ClosingSub: 0, ClosingTotal: 5,
	})

	// Each row alone fits in stock, together they exceed it
	payload := fiber.Map{
		"bill_no":    "IB-100",
		"date":       "2024-03-01",
		"issue_type": "consumption",
		"from_store": "main",
		"items": []fiber.Map{
			{"item_id": item.ID, "sub_quantity": "3", "rate": "10", "gst_rate": "0"},
			{"item_id": item.ID, "sub_quantity": "3", "rate": "10", "gst_rate": "0"},
		},
	}
	resp, body := doJSON(t, app, cookie, "POST", "/api/issue-bills", payload)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("joint over-issue status = %d, body %v", resp.StatusCode, body)
	}
	failures, ok := body["failures"].([]interface{})
	if !ok || len(failures) != 1 {
		t.Errorf("failures = %v, want exactly the second row", body["failures"])
	}

	// The same rows within stock still go through
	payload["items"] = []fiber.Map{
		{"item_id": item.ID, "sub_quantity": "3", "rate": "10", "gst_rate": "0"},
		{"item_id": item.ID, "sub_quantity": "2", "rate": "10", "gst_rate": "0"},
	}
	resp, body = doJSON(t, app, cookie, "POST", "/api/issue-bills", payload)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("within-stock status = %d, body %v", resp.StatusCode, body)
	}
}

func TestUpdateIssueBillRoute(t *testing.T) {
	app := setupTestApp(t)
	cookie := adminCookie(t)

	item := Models.Item{Name: "Coolant", Code: "CL-01", HeadUnit: "carton", SubUnit: "litre"}
	if err := Models.DB.Create(&item).Error; err != nil {
		t.Fatalf("creating item: %v", err)
	}
	Models.DB.Create(&Models.StockSummary{
		ItemID: item.ID, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ClosingMain: 10, ClosingSub: 0, ClosingTotal: 10,
	})

	payload := fiber.Map{
		"bill_no":    "IB-200",
		"date":       "2024-03-01",
		"issue_type": "consumption",
		"from_store": "main",
		"items": []fiber.Map{
			{"item_id": item.ID, "sub_quantity": "2", "rate": "50", "gst_rate": "0"},
		},
	}
	resp, body := doJSON(t, app, cookie, "POST", "/api/issue-bills", payload)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d, body %v", resp.StatusCode, body)
	}
	billID := body["data"].(map[string]interface{})["ID"].(float64)

	payload["items"] = []fiber.Map{
		{"item_id": item.ID, "sub_quantity": "4", "rate": "50", "gst_rate": "0"},
	}
	resp, body = doJSON(t, app, cookie, "PUT", fmt.Sprintf("/api/issue-bills/%.0f", billID), payload)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update status = %d, body %v", resp.StatusCode, body)
	}

	data := body["data"].(map[string]interface{})
	if data["total_bill_value"] != "200" {
		t.Errorf("total_bill_value = %v, want 200 after recompute", data["total_bill_value"])
	}
	items, ok := data["items"].([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("items = %v, want the single replaced row", data["items"])
	}
	if items[0].(map[string]interface{})["sub_quantity"] != "4" {
		t.Errorf("sub_quantity = %v, want 4", items[0].(map[string]interface{})["sub_quantity"])
	}

	resp, body = doJSON(t, app, cookie, "PUT", "/api/issue-bills/9999", payload)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("missing bill status = %d, body %v", resp.StatusCode, body)
	}
}
