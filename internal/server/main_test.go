package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rratchapol/backend/internal/config"
	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/repository"
	"github.com/rratchapol/backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Deal{},
		&models.Preorder{},
		&models.Like{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// setupTestApp builds a routed Fiber app over an in-memory database. The
// request-metrics middleware is left out so tests do not fight over the
// global Prometheus registry.
func setupTestApp(t *testing.T, deletePolicy string) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupHandlerTestDB(t)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	s := &Server{
		config:       &config.Config{DeletePolicy: deletePolicy},
		db:           db,
		userRepo:     userRepo,
		productRepo:  productRepo,
		categoryRepo: repository.NewCategoryRepository(db),
		dealRepo:     repository.NewDealRepository(db),
		preorderRepo: repository.NewPreorderRepository(db),
		likeRepo:     repository.NewLikeRepository(db),
	}
	s.userService = service.NewUserService(db, userRepo, deletePolicy)
	s.productService = service.NewProductService(db, productRepo, userRepo, deletePolicy)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, db
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func decodeArray(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func mustCreateUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Name:       "Test User",
		Email:      email,
		Password:   string(hashed),
		Mobile:     "0812345678",
		Address:    "1 Campus Road",
		Faculty:    "Engineering",
		Department: "Computer",
		ClassYear:  "3",
		Role:       role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateProduct(t *testing.T, db *gorm.DB, sellerID uint, name string) *models.Product {
	t.Helper()

	desc := "well used, still good"
	product := &models.Product{
		ProductName:        name,
		ProductQty:         3,
		ProductPrice:       150,
		ProductDescription: &desc,
		ItemCategory:       "Books",
		ItemType:           "used",
		SellerID:           sellerID,
		DateExp:            time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
