package server

import (
	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var dealRules = []validation.Rule{
	{Field: "buyer_id", Kind: validation.KindInteger, Required: true},
	{Field: "product_id", Kind: validation.KindInteger, Required: true},
	{Field: "qty", Kind: validation.KindInteger, Required: true},
	{Field: "deal_date", Kind: validation.KindDate, Required: true},
	{Field: "status", Kind: validation.KindString, Required: true},
}

type dealRequest struct {
	BuyerID   uint   `json:"buyer_id"`
	ProductID uint   `json:"product_id"`
	Qty       int    `json:"qty"`
	DealDate  string `json:"deal_date"`
	Status    string `json:"status"`
}

// ListDeals handles GET /api/deals.
func (s *Server) ListDeals(c *fiber.Ctx) error {
	deals, err := s.dealRepo.All(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(deals)
}

// CreateDeal handles POST /api/deals.
func (s *Server) CreateDeal(c *fiber.Ctx) error {
	if err := validateBody(c, dealRules); err != nil {
		return nil
	}

	var req dealRequest
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

	deal := &models.Deal{
		BuyerID:   req.BuyerID,
		ProductID: req.ProductID,
		Qty:       req.Qty,
		DealDate:  dealDate,
		Status:    req.Status,
	}
	if err := s.dealRepo.Create(c.Context(), deal); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

// GetDealsByBuyer handles GET /api/deals/:id, where :id is a buyer ID. The
// result is the buyer's deals, possibly empty.
func (s *Server) GetDealsByBuyer(c *fiber.Ctx) error {
	buyerID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	deals, err := s.dealRepo.FindByBuyer(c.Context(), buyerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(deals)
}

// UpdateDeal handles PUT /api/deals/:id.
func (s *Server) UpdateDeal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := validateBody(c, dealRules); err != nil {
		return nil
	}

	var req dealRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	deal, err := s.dealRepo.GetByID(c.Context(), id)
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

	deal.BuyerID = req.BuyerID
	deal.ProductID = req.ProductID
	deal.Qty = req.Qty
	deal.DealDate = dealDate
	deal.Status = req.Status

	if err := s.dealRepo.Update(c.Context(), deal); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(deal)
}

// DeleteDeal handles DELETE /api/deals/:id.
func (s *Server) DeleteDeal(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.dealRepo.GetByID(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	if err := s.dealRepo.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Deal deleted successfully",
	})
}
