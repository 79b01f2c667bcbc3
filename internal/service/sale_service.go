package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go-smart-inventory/internal/model"
	"go-smart-inventory/internal/repository"
	"go-smart-inventory/internal/ws"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type SaleService interface {
	Create(req *model.Sale) (*model.Sale, error)
	Delete(id uuid.UUID) error
	List() ([]model.Sale, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	hub         *ws.Hub
}

func NewSaleService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		db:          db,
		hub:         hub,
	}
}

// Create records a sale and deducts the sold quantity from stock. Both
// writes commit together or not at all. The stock check and the update
// share no lock across requests, so two concurrent sales can race; the
// storage layer's per-request commit is the only guarantee here.
func (s *saleService) Create(req *model.Sale) (*model.Sale, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	var product model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if product.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		newQuantity := product.Quantity - req.Quantity
		if err := s.productRepo.UpdateQuantity(tx, product.ID, newQuantity); err != nil {
			return err
		}

		req.SaleDate = time.Now().UTC()
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		product.Quantity = newQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("sale_id", req.ID.String()).
		Str("product_id", product.ID.String()).
		Int("quantity", req.Quantity).
		Float64("total_price", req.TotalPrice).
		Msg("sale recorded")

	if s.hub != nil {
		s.hub.PublishStock(ws.StockEvent{
			Type:        "sale_recorded",
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    product.Quantity,
			Message:     fmt.Sprintf("%d units of '%s' sold", req.Quantity, product.Name),
		})
	}

	return req, nil
}

// Delete removes a sale and returns the recorded quantity to stock.
// Restoration uses the quantity stored on the sale, never a
// recomputation. When the product is already gone the restore is
// skipped silently and only the sale is removed.
func (s *saleService) Delete(id uuid.UUID) error {
	var (
		sale     model.Sale
		product  model.Product
		restored bool
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		if err := tx.First(&product, "id = ?", sale.ProductID).Error; err == nil {
			newQuantity := product.Quantity + sale.Quantity
			if err := s.productRepo.UpdateQuantity(tx, product.ID, newQuantity); err != nil {
				return err
			}
			product.Quantity = newQuantity
			restored = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Delete(&model.Sale{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("sale_id", id.String()).
		Str("product_id", sale.ProductID.String()).
		Bool("stock_restored", restored).
		Msg("sale deleted")

	if s.hub != nil && restored {
		s.hub.PublishStock(ws.StockEvent{
			Type:        "sale_reversed",
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    product.Quantity,
			Message:     fmt.Sprintf("%d units of '%s' returned to stock", sale.Quantity, product.Name),
		})
	}

	return nil
}

func (s *saleService) List() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}
