package server

import (
	"errors"

	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/observability"
	"github.com/rratchapol/backend/internal/service"
	"github.com/rratchapol/backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

var userCreateRules = []validation.Rule{
	{Field: "name", Kind: validation.KindString, Required: true, MaxLen: 255},
	{Field: "email", Kind: validation.KindEmail, Required: true, MaxLen: 255},
	{Field: "password", Kind: validation.KindString, Required: true, MinLen: 8},
	{Field: "mobile", Kind: validation.KindString, Required: true, MaxLen: 20},
	{Field: "address", Kind: validation.KindString, Required: true},
	{Field: "faculty", Kind: validation.KindString, Required: true},
	{Field: "department", Kind: validation.KindString, Required: true},
	{Field: "class_year", Kind: validation.KindString, Required: true},
	{Field: "role", Kind: validation.KindString, Required: true, OneOf: []string{"seller", "buyer"}},
}

// userUpdateRules mirror the create rules minus email, which is immutable
// after registration.
var userUpdateRules = []validation.Rule{
	{Field: "name", Kind: validation.KindString, Required: true, MaxLen: 255},
	{Field: "password", Kind: validation.KindString, Required: true, MinLen: 8},
	{Field: "mobile", Kind: validation.KindString, Required: true, MaxLen: 20},
	{Field: "address", Kind: validation.KindString, Required: true},
	{Field: "faculty", Kind: validation.KindString, Required: true},
	{Field: "department", Kind: validation.KindString, Required: true},
	{Field: "class_year", Kind: validation.KindString, Required: true},
	{Field: "role", Kind: validation.KindString, Required: true, OneOf: []string{"seller", "buyer"}},
}

// ListUsers handles POST /api/users_page.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	params, err := parseListParams(c)
	if err != nil {
		return nil
	}

	span, ctx := observability.NewSpan(c.UserContext(), "users.list")
	defer span.End()
	span.AddAttributes(
		attribute.Int("list.page_size", params.PageSize),
		attribute.Int("list.offset", params.Offset),
		attribute.Bool("list.searched", params.Search != ""),
	)

	result, err := s.userService.List(ctx, params)
	if err != nil {
		span.SetError(err)
		return respondError(c, err)
	}
	return listEnvelope(c, result)
}

// CreateUser handles POST /api/users.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	if err := validateBody(c, userCreateRules); err != nil {
		return nil
	}

	var in service.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Create(c.Context(), in)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeDuplicateEmail {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": appErr.Message,
				"email":   in.Email,
			})
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// GetUser handles GET /api/users/:id.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateUser handles PUT /api/users/:id.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := validateBody(c, userUpdateRules); err != nil {
		return nil
	}

	var in service.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// DeleteUser handles DELETE /api/users/:id.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
