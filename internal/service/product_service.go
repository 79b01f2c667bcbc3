package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go-smart-inventory/internal/model"
	"go-smart-inventory/internal/repository"
	"go-smart-inventory/internal/ws"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService interface {
	Create(req *model.Product) error
	Delete(id uuid.UUID) error
	List() ([]model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	hub         *ws.Hub
}

func NewProductService(productRepo repository.ProductRepository, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: productRepo,
		hub:         hub,
	}
}

func (s *productService) Create(req *model.Product) error {
	if err := validateInput(req); err != nil {
		return err
	}

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	log.Info().
		Str("product_id", req.ID.String()).
		Str("name", req.Name).
		Int("quantity", req.Quantity).
		Msg("product created")

	if s.hub != nil {
		s.hub.PublishStock(ws.StockEvent{
			Type:        "product_created",
			ProductID:   req.ID,
			ProductName: req.Name,
			Quantity:    req.Quantity,
			Message:     fmt.Sprintf("product '%s' added to catalog", req.Name),
		})
	}

	return nil
}

// Delete removes a product permanently. Sales referencing it are left
// in place as dangling records.
func (s *productService) Delete(id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	log.Info().Str("product_id", id.String()).Str("name", product.Name).Msg("product deleted")

	if s.hub != nil {
		s.hub.PublishStock(ws.StockEvent{
			Type:        "product_deleted",
			ProductID:   id,
			ProductName: product.Name,
			Message:     fmt.Sprintf("product '%s' removed from catalog", product.Name),
		})
	}

	return nil
}

func (s *productService) List() ([]model.Product, error) {
	return s.productRepo.FindAll()
}
