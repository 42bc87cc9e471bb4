package server

import (
	"errors"

	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/repository"
	"github.com/rratchapol/backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals up the call chain that the error response has
// already been written to the client; handlers return nil after seeing it.
var errResponseWritten = errors.New("response already written")

// parseID extracts and validates a positive integer ID from the route params.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID format"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// validateBody checks the raw request body against the entity's rule set and
// writes a 400/422 response on failure.
func validateBody(c *fiber.Ctx, rules []validation.Rule) error {
	errs, err := validation.Check(c.Body(), rules)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	if errs.Any() {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewFieldValidationError(errs))
		return errResponseWritten
	}
	return nil
}

// respondError maps an application error to its HTTP status and renders it.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

type listOrderClause struct {
	Column *int   `json:"column"`
	Dir    string `json:"dir"`
}

// listRequest mirrors the table-driven request body the frontend sends to the
// *_page endpoints.
type listRequest struct {
	Length *int              `json:"length"`
	Start  int               `json:"start"`
	Order  []listOrderClause `json:"order"`
	Search struct {
		Value string `json:"value"`
	} `json:"search"`
}

// parseListParams reads the listing knobs from the request body. An empty body
// yields the defaults (page size 10, offset 0, storage order, no search).
func parseListParams(c *fiber.Ctx) (repository.ListParams, error) {
	var req listRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
			return repository.ListParams{}, errResponseWritten
		}
	}

	p := repository.ListParams{
		PageSize:   repository.DefaultPageSize,
		Offset:     req.Start,
		SortColumn: -1,
		Search:     req.Search.Value,
	}
	if req.Length != nil {
		p.PageSize = *req.Length
	}
	if len(req.Order) > 0 && req.Order[0].Column != nil {
		p.SortColumn = *req.Order[0].Column
		p.SortDir = req.Order[0].Dir
	}
	return p, nil
}

// listEnvelope renders one page of a listed collection in the envelope shape
// the table frontend consumes.
func listEnvelope[T any](c *fiber.Ctx, result *repository.ListResult[T]) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Success",
		"data":    result,
	})
}
