package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-smart-inventory/internal/model"
	"go-smart-inventory/internal/service"
	"go-smart-inventory/pkg/metrics"
)

// SaleCreateRequest is the writable subset of a sale. The sale date and id
// are assigned server-side.
type SaleCreateRequest struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
}

type SaleHandler struct {
	salesService     service.SaleService
	analyticsService service.AnalyticsService
}

func NewSaleHandler(sales service.SaleService, analytics service.AnalyticsService) *SaleHandler {
	return &SaleHandler{
		salesService:     sales,
		analyticsService: analytics,
	}
}

// GetSales lists all recorded sales.
// GET /sales/
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.salesService.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// CreateSale records a sale and deducts stock.
// POST /sales/
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req SaleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale := model.Sale{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
	}

	created, err := h.salesService.Create(&sale)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		case errors.Is(err, service.ErrInsufficientStock):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrValidation):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
	}

	metrics.ObserveSale()
	return c.JSON(created)
}

// DeleteSale removes a sale and restores the sold quantity to stock.
// DELETE /sales/:id
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.salesService.Delete(id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Sale deleted and inventory restored"})
}

// GetAnalytics returns revenue and top-seller summaries.
// GET /sales/analytics
func (h *SaleHandler) GetAnalytics(c *fiber.Ctx) error {
	summary, err := h.analyticsService.Summarize(time.Now().UTC())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}
