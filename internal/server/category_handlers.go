package server

import (
	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var categoryRules = []validation.Rule{
	{Field: "category_name", Kind: validation.KindString, Required: true, MaxLen: 255},
}

type categoryRequest struct {
	CategoryName string `json:"category_name"`
}

// ListCategories handles POST /api/categories_page. Categories are few, so
// the endpoint returns the whole collection as a plain array.
func (s *Server) ListCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.All(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

// CreateCategory handles POST /api/categories.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	if err := validateBody(c, categoryRules); err != nil {
		return nil
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category := &models.Category{CategoryName: req.CategoryName}
	if err := s.categoryRepo.Create(c.Context(), category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategory handles GET /api/categories/:id.
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

// UpdateCategory handles PUT /api/categories/:id.
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := validateBody(c, categoryRules); err != nil {
		return nil
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	category.CategoryName = req.CategoryName
	if err := s.categoryRepo.Update(c.Context(), category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.categoryRepo.GetByID(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	if err := s.categoryRepo.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
