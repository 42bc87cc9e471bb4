// Package service holds the business rules sitting between handlers and
// repositories.
package service

import (
	"context"

	"github.com/rratchapol/backend/internal/config"
	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService implements account creation, updates, listing, and the
// configurable delete policy for users.
type UserService struct {
	db           *gorm.DB
	users        repository.UserRepository
	deletePolicy string
}

// NewUserService returns a new UserService.
func NewUserService(db *gorm.DB, users repository.UserRepository, deletePolicy string) *UserService {
	if deletePolicy == "" {
		deletePolicy = config.DeletePolicyIgnore
	}
	return &UserService{db: db, users: users, deletePolicy: deletePolicy}
}

// CreateUserInput carries the writable fields of a new user.
type CreateUserInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	Faculty    string `json:"faculty"`
	Department string `json:"department"`
	ClassYear  string `json:"class_year"`
	Role       string `json:"role"`
}

// UpdateUserInput carries the writable fields of a user update. Email is
// immutable after creation.
type UpdateUserInput struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	Faculty    string `json:"faculty"`
	Department string `json:"department"`
	ClassYear  string `json:"class_year"`
	Role       string `json:"role"`
}

// Create registers a new user with a bcrypt-hashed password. A taken email
// yields the dedicated duplicate-email error.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateEmailError()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   string(hashed),
		Mobile:     in.Mobile,
		Address:    in.Address,
		Faculty:    in.Faculty,
		Department: in.Department,
		ClassYear:  in.ClassYear,
		Role:       models.UserRole(in.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns a user by its identifier.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update fully replaces a user's writable fields. The password is re-hashed.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user.Name = in.Name
	user.Password = string(hashed)
	user.Mobile = in.Mobile
	user.Address = in.Address
	user.Faculty = in.Faculty
	user.Department = in.Department
	user.ClassYear = in.ClassYear
	user.Role = models.UserRole(in.Role)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List runs the listing engine over the user collection.
func (s *UserService) List(ctx context.Context, p repository.ListParams) (*repository.ListResult[models.User], error) {
	return s.users.List(ctx, p)
}

// Delete removes a user, honoring the configured delete policy for rows that
// reference it (owned products and the buyer's deals, preorders, and likes).
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}

	switch s.deletePolicy {
	case config.DeletePolicyRestrict:
		if err := s.restrictUserDelete(ctx, id); err != nil {
			return err
		}
	case config.DeletePolicyCascade:
		return s.cascadeUserDelete(ctx, id)
	}

	return s.users.Delete(ctx, id)
}

func (s *UserService) restrictUserDelete(ctx context.Context, id uint) error {
	products := repository.NewProductRepository(s.db)
	deals := repository.NewDealRepository(s.db)
	preorders := repository.NewPreorderRepository(s.db)
	likes := repository.NewLikeRepository(s.db)

	counts := []func() (int64, error){
		func() (int64, error) { return products.CountBySeller(ctx, id) },
		func() (int64, error) { return deals.CountByBuyer(ctx, id) },
		func() (int64, error) { return preorders.CountByBuyer(ctx, id) },
		func() (int64, error) { return likes.CountByUser(ctx, id) },
	}
	for _, count := range counts {
		n, err := count()
		if err != nil {
			return err
		}
		if n > 0 {
			return models.NewValidationError("User has dependent records and cannot be deleted")
		}
	}
	return nil
}

func (s *UserService) cascadeUserDelete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := repository.NewProductRepository(tx)
		deals := repository.NewDealRepository(tx)
		preorders := repository.NewPreorderRepository(tx)
		likes := repository.NewLikeRepository(tx)

		if err := likes.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := deals.DeleteByBuyer(ctx, id); err != nil {
			return err
		}
		if err := preorders.DeleteByBuyer(ctx, id); err != nil {
			return err
		}

		owned, err := products.FindBySeller(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range owned {
			if err := cascadeProductDelete(ctx, tx, p.ID); err != nil {
				return err
			}
		}

		return repository.NewUserRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	return nil
}

// cascadeProductDelete removes a product and the rows referencing it.
func cascadeProductDelete(ctx context.Context, tx *gorm.DB, productID uint) error {
	if err := repository.NewDealRepository(tx).DeleteByProduct(ctx, productID); err != nil {
		return err
	}
	if err := repository.NewPreorderRepository(tx).DeleteByProduct(ctx, productID); err != nil {
		return err
	}
	if err := repository.NewLikeRepository(tx).DeleteByProduct(ctx, productID); err != nil {
		return err
	}
	return repository.NewProductRepository(tx).Delete(ctx, productID)
}
