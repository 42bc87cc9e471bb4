// Package seed populates the database with realistic development data.
package seed

import (
	"fmt"
	"time"

	"github.com/rratchapol/backend/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var categoryNames = []string{
	"Books", "Electronics", "Clothing", "Stationery", "Sports",
	"Food & Drink", "Furniture", "Tickets",
}

// Run fills the database with fake users, categories, products, deals,
// preorders, and likes. It is idempotent enough for development: it skips
// seeding when users already exist.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	// All seeded accounts share one password to keep local logins simple.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, 20)
	for i := 0; i < 20; i++ {
		role := models.UserRoleBuyer
		if i < 8 {
			role = models.UserRoleSeller
		}
		users = append(users, models.User{
			Name:       gofakeit.Name(),
			Email:      fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password:   string(hashed),
			Mobile:     gofakeit.Phone(),
			Address:    gofakeit.Address().Address,
			Faculty:    gofakeit.RandomString([]string{"Engineering", "Science", "Arts", "Medicine"}),
			Department: gofakeit.RandomString([]string{"Computer", "Chemistry", "History", "Nursing"}),
			ClassYear:  fmt.Sprintf("%d", gofakeit.Number(1, 6)),
			Role:       role,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}

	categories := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		categories = append(categories, models.Category{CategoryName: name})
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	products := make([]models.Product, 0, 40)
	for i := 0; i < 40; i++ {
		seller := users[gofakeit.Number(0, 7)]
		desc := gofakeit.Sentence(8)
		products = append(products, models.Product{
			ProductName:        gofakeit.ProductName(),
			ProductQty:         gofakeit.Number(1, 50),
			ProductPrice:       gofakeit.Price(10, 2000),
			ProductDescription: &desc,
			ItemCategory:       categories[gofakeit.Number(0, len(categories)-1)].CategoryName,
			ItemType:           gofakeit.RandomString([]string{"new", "used"}),
			SellerID:           seller.ID,
			DateExp:            time.Now().AddDate(0, gofakeit.Number(1, 12), 0),
		})
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}

	deals := make([]models.Deal, 0, 30)
	for i := 0; i < 30; i++ {
		deals = append(deals, models.Deal{
			BuyerID:   users[gofakeit.Number(8, 19)].ID,
			ProductID: products[gofakeit.Number(0, len(products)-1)].ID,
			Qty:       gofakeit.Number(1, 5),
			DealDate:  gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
			Status:    gofakeit.RandomString([]string{"pending", "paid", "delivered"}),
		})
	}
	if err := db.Create(&deals).Error; err != nil {
		return fmt.Errorf("seeding deals: %w", err)
	}

	preorders := make([]models.Preorder, 0, 15)
	for i := 0; i < 15; i++ {
		preorders = append(preorders, models.Preorder{
			BuyerID:   users[gofakeit.Number(8, 19)].ID,
			ProductID: products[gofakeit.Number(0, len(products)-1)].ID,
			Qty:       gofakeit.Number(1, 3),
			DealDate:  gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 2, 0)),
			Status:    "pending",
			Bill:      uuid.NewString(),
		})
	}
	if err := db.Create(&preorders).Error; err != nil {
		return fmt.Errorf("seeding preorders: %w", err)
	}

	likes := make([]models.Like, 0, 50)
	for i := 0; i < 50; i++ {
		likes = append(likes, models.Like{
			UserID:    users[gofakeit.Number(0, 19)].ID,
			ProductID: products[gofakeit.Number(0, len(products)-1)].ID,
		})
	}
	if err := db.Create(&likes).Error; err != nil {
		return fmt.Errorf("seeding likes: %w", err)
	}

	return nil
}
