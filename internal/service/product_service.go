package service

import (
	"context"
	"time"

	"github.com/rratchapol/backend/internal/config"
	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/repository"

	"gorm.io/gorm"
)

// ProductService implements listing creation, partial updates, and the
// configurable delete policy for products.
type ProductService struct {
	db           *gorm.DB
	products     repository.ProductRepository
	users        repository.UserRepository
	deletePolicy string
}

// NewProductService returns a new ProductService.
func NewProductService(db *gorm.DB, products repository.ProductRepository, users repository.UserRepository, deletePolicy string) *ProductService {
	if deletePolicy == "" {
		deletePolicy = config.DeletePolicyIgnore
	}
	return &ProductService{db: db, products: products, users: users, deletePolicy: deletePolicy}
}

// CreateProductInput carries the writable fields of a new product.
type CreateProductInput struct {
	ProductName        string
	ProductQty         int
	ProductPrice       float64
	ProductDescription *string
	ItemCategory       string
	ItemType           string
	SellerID           uint
	DateExp            time.Time
}

// UpdateProductInput carries partial-update fields: nil pointers leave the
// stored value untouched. DescriptionSet distinguishes "absent" from an
// explicit null clearing the description.
type UpdateProductInput struct {
	ProductName        *string
	ProductQty         *int
	ProductPrice       *float64
	ProductDescription *string
	DescriptionSet     bool
	ItemCategory       *string
	ItemType           *string
	SellerID           *uint
	DateExp            *time.Time
}

// Create lists a new product after confirming the seller exists.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	ok, err := s.users.Exists(ctx, in.SellerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewFieldValidationError(map[string]string{
			"seller_id": "The selected seller_id is invalid.",
		})
	}

	product := &models.Product{
		ProductName:        in.ProductName,
		ProductQty:         in.ProductQty,
		ProductPrice:       in.ProductPrice,
		ProductDescription: in.ProductDescription,
		ItemCategory:       in.ItemCategory,
		ItemType:           in.ItemType,
		SellerID:           in.SellerID,
		DateExp:            in.DateExp,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns a product by its identifier.
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Update applies a partial update: only fields present in the input are
// validated and written, everything else keeps its stored value.
func (s *ProductService) Update(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.SellerID != nil {
		ok, err := s.users.Exists(ctx, *in.SellerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.NewFieldValidationError(map[string]string{
				"seller_id": "The selected seller_id is invalid.",
			})
		}
		product.SellerID = *in.SellerID
	}

	if in.ProductName != nil {
		product.ProductName = *in.ProductName
	}
	if in.ProductQty != nil {
		product.ProductQty = *in.ProductQty
	}
	if in.ProductPrice != nil {
		product.ProductPrice = *in.ProductPrice
	}
	if in.DescriptionSet {
		product.ProductDescription = in.ProductDescription
	}
	if in.ItemCategory != nil {
		product.ItemCategory = *in.ItemCategory
	}
	if in.ItemType != nil {
		product.ItemType = *in.ItemType
	}
	if in.DateExp != nil {
		product.DateExp = *in.DateExp
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List runs the listing engine over the product collection.
func (s *ProductService) List(ctx context.Context, p repository.ListParams) (*repository.ListResult[models.Product], error) {
	return s.products.List(ctx, p)
}

// Delete removes a product, honoring the configured delete policy for deals,
// preorders, and likes that reference it.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return err
	}

	switch s.deletePolicy {
	case config.DeletePolicyRestrict:
		deals := repository.NewDealRepository(s.db)
		preorders := repository.NewPreorderRepository(s.db)
		likes := repository.NewLikeRepository(s.db)

		counts := []func() (int64, error){
			func() (int64, error) { return deals.CountByProduct(ctx, id) },
			func() (int64, error) { return preorders.CountByProduct(ctx, id) },
			func() (int64, error) { return likes.CountByProduct(ctx, id) },
		}
		for _, count := range counts {
			n, err := count()
			if err != nil {
				return err
			}
			if n > 0 {
				return models.NewValidationError("Product has dependent records and cannot be deleted")
			}
		}
	case config.DeletePolicyCascade:
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return cascadeProductDelete(ctx, tx, id)
		})
	}

	return s.products.Delete(ctx, id)
}
