package server

import (
	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var likeCreateRules = []validation.Rule{
	{Field: "user_id", Kind: validation.KindInteger, Required: true},
	{Field: "product_id", Kind: validation.KindInteger, Required: true},
}

// Update demands the same fields as create even though only product_id is
// applied to the row.
var likeUpdateRules = likeCreateRules

type likeRequest struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
}

// checkLikeRefs verifies the referenced user and product exist.
func (s *Server) checkLikeRefs(c *fiber.Ctx, userID, productID uint) error {
	fields := map[string]string{}

	ok, err := s.userRepo.Exists(c.Context(), userID)
	if err != nil {
		return err
	}
	if !ok {
		fields["user_id"] = "The selected user_id is invalid."
	}
	ok, err = s.productRepo.Exists(c.Context(), productID)
	if err != nil {
		return err
	}
	if !ok {
		fields["product_id"] = "The selected product_id is invalid."
	}

	if len(fields) > 0 {
		return models.NewFieldValidationError(fields)
	}
	return nil
}

// ListLikes handles GET /api/likes.
func (s *Server) ListLikes(c *fiber.Ctx) error {
	likes, err := s.likeRepo.All(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(likes)
}

// CreateLike handles POST /api/likes.
func (s *Server) CreateLike(c *fiber.Ctx) error {
	if err := validateBody(c, likeCreateRules); err != nil {
		return nil
	}

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.checkLikeRefs(c, req.UserID, req.ProductID); err != nil {
		return respondError(c, err)
	}

	like := &models.Like{UserID: req.UserID, ProductID: req.ProductID}
	if err := s.likeRepo.Create(c.Context(), like); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Like created successfully",
		"like":    like,
	})
}

// GetLikesByUser handles GET /api/likes/:id, where :id is a user ID. The
// result is that user's likes, possibly empty.
func (s *Server) GetLikesByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.likeRepo.FindByUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(likes)
}

// UpdateLike handles PUT /api/likes/:id, where :id is the like's own ID.
// Only product_id is applied; the like stays with its original user.
func (s *Server) UpdateLike(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := validateBody(c, likeUpdateRules); err != nil {
		return nil
	}

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	like, err := s.likeRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.checkLikeRefs(c, req.UserID, req.ProductID); err != nil {
		return respondError(c, err)
	}

	like.ProductID = req.ProductID
	if err := s.likeRepo.Update(c.Context(), like); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(like)
}

// DeleteLike handles DELETE /api/likes/:id.
func (s *Server) DeleteLike(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.likeRepo.GetByID(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	if err := s.likeRepo.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Like deleted successfully",
	})
}
