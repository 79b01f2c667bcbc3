package repository

import (
	"time"

	"go-smart-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	RevenueSince(since time.Time) (float64, error)
	DailyRevenue(start, end time.Time) ([]DailyRevenueRow, error)
	TopSeller() (*TopSellerRow, error)
}

// DailyRevenueRow is one calendar day's revenue aggregate
type DailyRevenueRow struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// TopSellerRow is the product with the highest total units sold
type TopSellerRow struct {
	ProductID uuid.UUID `json:"product_id"`
	Units     int       `json:"units"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) RevenueSince(since time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&model.Sale{}).
		Where("sale_date >= ?", since).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *saleRepo) DailyRevenue(start, end time.Time) ([]DailyRevenueRow, error) {
	var results []DailyRevenueRow

	rows, err := r.db.Model(&model.Sale{}).
		Select("DATE(sale_date) as date, COALESCE(SUM(total_price), 0) as revenue").
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Group("DATE(sale_date)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row DailyRevenueRow
		if err := rows.Scan(&row.Date, &row.Revenue); err != nil {
			return nil, err
		}
		// Drivers disagree on date formatting; keep the YYYY-MM-DD prefix
		if len(row.Date) > 10 {
			row.Date = row.Date[:10]
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

func (r *saleRepo) TopSeller() (*TopSellerRow, error) {
	var row TopSellerRow
	res := r.db.Model(&model.Sale{}).
		Select("product_id, SUM(quantity) as units").
		Group("product_id").
		Order("units DESC").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}
