package server

import (
	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var preorderRules = []validation.Rule{
	{Field: "buyer_id", Kind: validation.KindInteger, Required: true},
	{Field: "product_id", Kind: validation.KindInteger, Required: true},
	{Field: "qty", Kind: validation.KindInteger, Required: true},
	{Field: "deal_date", Kind: validation.KindDate, Required: true},
	{Field: "status", Kind: validation.KindString, Required: true},
	{Field: "bill", Kind: validation.KindString, Required: true},
}

type preorderRequest struct {
	BuyerID   uint   `json:"buyer_id"`
	ProductID uint   `json:"product_id"`
	Qty       int    `json:"qty"`
	DealDate  string `json:"deal_date"`
	Status    string `json:"status"`
	Bill      string `json:"bill"`
}

// ListPreorders handles GET /api/preorders.
func (s *Server) ListPreorders(c *fiber.Ctx) error {
	preorders, err := s.preorderRepo.All(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(preorders)
}

// CreatePreorder handles POST /api/preorders.
func (s *Server) CreatePreorder(c *fiber.Ctx) error {
	if err := validateBody(c, preorderRules); err != nil {
		return nil
	}

	var req preorderRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	dealDate, err := validation.ParseDate(req.DealDate)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewFieldValidationError(map[string]string{
				"deal_date": "The deal_date is not a valid date.",
			}))
	}

	preorder := &models.Preorder{
		BuyerID:   req.BuyerID,
		ProductID: req.ProductID,
		Qty:       req.Qty,
		DealDate:  dealDate,
		Status:    req.Status,
		Bill:      req.Bill,
	}
	if err := s.preorderRepo.Create(c.Context(), preorder); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(preorder)
}

// GetPreordersByBuyer handles GET /api/preorders/:id, where :id is a buyer
// ID. The result is the buyer's preorders, possibly empty.
func (s *Server) GetPreordersByBuyer(c *fiber.Ctx) error {
	buyerID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	preorders, err := s.preorderRepo.FindByBuyer(c.Context(), buyerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(preorders)
}

// UpdatePreorder handles PUT /api/preorders/:id.
func (s *Server) UpdatePreorder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := validateBody(c, preorderRules); err != nil {
		return nil
	}

	var req preorderRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	preorder, err := s.preorderRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	dealDate, err := validation.ParseDate(req.DealDate)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewFieldValidationError(map[string]string{
				"deal_date": "The deal_date is not a valid date.",
			}))
	}

	preorder.BuyerID = req.BuyerID
	preorder.ProductID = req.ProductID
	preorder.Qty = req.Qty
	preorder.DealDate = dealDate
	preorder.Status = req.Status
	preorder.Bill = req.Bill

	if err := s.preorderRepo.Update(c.Context(), preorder); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(preorder)
}

// DeletePreorder handles DELETE /api/preorders/:id.
func (s *Server) DeletePreorder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.preorderRepo.GetByID(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	if err := s.preorderRepo.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Preorder deleted successfully",
	})
}
