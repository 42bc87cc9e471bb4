package server

import (
	"encoding/json"

	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/observability"
	"github.com/rratchapol/backend/internal/service"
	"github.com/rratchapol/backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

var productCreateRules = []validation.Rule{
	{Field: "product_name", Kind: validation.KindString, Required: true, MaxLen: 255},
	{Field: "product_qty", Kind: validation.KindInteger, Required: true},
	{Field: "product_price", Kind: validation.KindNumeric, Required: true},
	{Field: "product_description", Kind: validation.KindString, Nullable: true},
	{Field: "item_category", Kind: validation.KindString, Required: true, MaxLen: 255},
	{Field: "item_type", Kind: validation.KindString, Required: true, MaxLen: 255},
	{Field: "seller_id", Kind: validation.KindInteger, Required: true},
	{Field: "date_exp", Kind: validation.KindDate, Required: true},
}

// productUpdateRules validate each field only when it appears in the body;
// absent fields keep their stored values.
var productUpdateRules = []validation.Rule{
	{Field: "product_name", Kind: validation.KindString, Sometimes: true, MaxLen: 255},
	{Field: "product_qty", Kind: validation.KindInteger, Sometimes: true},
	{Field: "product_price", Kind: validation.KindNumeric, Sometimes: true},
	{Field: "product_description", Kind: validation.KindString, Nullable: true},
	{Field: "item_category", Kind: validation.KindString, Sometimes: true, MaxLen: 255},
	{Field: "item_type", Kind: validation.KindString, Sometimes: true, MaxLen: 255},
	{Field: "seller_id", Kind: validation.KindInteger, Sometimes: true},
	{Field: "date_exp", Kind: validation.KindDate, Sometimes: true},
}

type productCreateRequest struct {
	ProductName        string  `json:"product_name"`
	ProductQty         int     `json:"product_qty"`
	ProductPrice       float64 `json:"product_price"`
	ProductDescription *string `json:"product_description"`
	ItemCategory       string  `json:"item_category"`
	ItemType           string  `json:"item_type"`
	SellerID           uint    `json:"seller_id"`
	DateExp            string  `json:"date_exp"`
}

// ListProducts handles POST /api/products_page.
func (s *Server) ListProducts(c *fiber.Ctx) error {
	params, err := parseListParams(c)
	if err != nil {
		return nil
	}

	span, ctx := observability.NewSpan(c.UserContext(), "products.list")
	defer span.End()
	span.AddAttributes(
		attribute.Int("list.page_size", params.PageSize),
		attribute.Int("list.offset", params.Offset),
		attribute.Bool("list.searched", params.Search != ""),
	)

	result, err := s.productService.List(ctx, params)
	if err != nil {
		span.SetError(err)
		return respondError(c, err)
	}
	return listEnvelope(c, result)
}

// CreateProduct handles POST /api/products.
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	if err := validateBody(c, productCreateRules); err != nil {
		return nil
	}

	var req productCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Validation already vetted the date format.
	dateExp, err := validation.ParseDate(req.DateExp)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewFieldValidationError(map[string]string{
				"date_exp": "The date_exp is not a valid date.",
			}))
	}

	product, err := s.productService.Create(c.Context(), service.CreateProductInput{
		ProductName:        req.ProductName,
		ProductQty:         req.ProductQty,
		ProductPrice:       req.ProductPrice,
		ProductDescription: req.ProductDescription,
		ItemCategory:       req.ItemCategory,
		ItemType:           req.ItemType,
		SellerID:           req.SellerID,
		DateExp:            dateExp,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetProduct handles GET /api/products/:id.
func (s *Server) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.productService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// UpdateProduct handles PUT /api/products/:id. Only the fields present in the
// body are applied; an explicit null clears the description.
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := validateBody(c, productUpdateRules); err != nil {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var in service.UpdateProductInput
	if raw, ok := fields["product_name"]; ok {
		in.ProductName = new(string)
		_ = json.Unmarshal(raw, in.ProductName)
	}
	if raw, ok := fields["product_qty"]; ok {
		in.ProductQty = new(int)
		_ = json.Unmarshal(raw, in.ProductQty)
	}
	if raw, ok := fields["product_price"]; ok {
		in.ProductPrice = new(float64)
		_ = json.Unmarshal(raw, in.ProductPrice)
	}
	if raw, ok := fields["product_description"]; ok {
		in.DescriptionSet = true
		if string(raw) != "null" {
			in.ProductDescription = new(string)
			_ = json.Unmarshal(raw, in.ProductDescription)
		}
	}
	if raw, ok := fields["item_category"]; ok {
		in.ItemCategory = new(string)
		_ = json.Unmarshal(raw, in.ItemCategory)
	}
	if raw, ok := fields["item_type"]; ok {
		in.ItemType = new(string)
		_ = json.Unmarshal(raw, in.ItemType)
	}
	if raw, ok := fields["seller_id"]; ok {
		in.SellerID = new(uint)
		_ = json.Unmarshal(raw, in.SellerID)
	}
	if raw, ok := fields["date_exp"]; ok {
		var s string
		_ = json.Unmarshal(raw, &s)
		if t, perr := validation.ParseDate(s); perr == nil {
			in.DateExp = &t
		}
	}

	product, err := s.productService.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// DeleteProduct handles DELETE /api/products/:id.
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.productService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
