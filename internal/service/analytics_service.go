package service

import (
	"time"

	"github.com/google/uuid"

	"go-smart-inventory/internal/repository"
)

// Summary is the analytics payload served at /sales/analytics.
type Summary struct {
	DailyRevenue      float64      `json:"daily_revenue"`
	MonthlyRevenue    float64      `json:"monthly_revenue"`
	TopSellingProduct *TopProduct  `json:"top_selling_product"`
	DailySalesChart   []ChartEntry `json:"daily_sales_chart"`
}

// TopProduct identifies the product with the highest total units sold.
// Name is resolved at query time and reflects the current catalog, so
// it is empty for products that were deleted since.
type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitsSold int       `json:"units_sold"`
}

// ChartEntry is one day of the 7-day revenue chart.
type ChartEntry struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

const chartDays = 7

type AnalyticsService interface {
	Summarize(now time.Time) (*Summary, error)
}

type analyticsService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewAnalyticsService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) AnalyticsService {
	return &analyticsService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// Summarize derives revenue and top-seller figures relative to now.
// All window math is in UTC: the daily window starts at 00:00:00 of
// now's day, the monthly window on the 1st of now's month. The chart
// covers [now-6d .. now], one entry per calendar day, zero-filled.
func (s *analyticsService) Summarize(now time.Time) (*Summary, error) {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	dailyRevenue, err := s.saleRepo.RevenueSince(dayStart)
	if err != nil {
		return nil, err
	}

	monthlyRevenue, err := s.saleRepo.RevenueSince(monthStart)
	if err != nil {
		return nil, err
	}

	top, err := s.topProduct()
	if err != nil {
		return nil, err
	}

	chart, err := s.dailyChart(dayStart)
	if err != nil {
		return nil, err
	}

	return &Summary{
		DailyRevenue:      dailyRevenue,
		MonthlyRevenue:    monthlyRevenue,
		TopSellingProduct: top,
		DailySalesChart:   chart,
	}, nil
}

func (s *analyticsService) topProduct() (*TopProduct, error) {
	row, err := s.saleRepo.TopSeller()
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	top := &TopProduct{
		ProductID: row.ProductID,
		UnitsSold: row.Units,
	}
	// Name lookup is best effort: the product may be gone
	if product, err := s.productRepo.FindByID(row.ProductID); err == nil {
		top.Name = product.Name
	}
	return top, nil
}

func (s *analyticsService) dailyChart(dayStart time.Time) ([]ChartEntry, error) {
	windowStart := dayStart.AddDate(0, 0, -(chartDays - 1))
	windowEnd := dayStart.AddDate(0, 0, 1)

	rows, err := s.saleRepo.DailyRevenue(windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]float64, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row.Revenue
	}

	chart := make([]ChartEntry, 0, chartDays)
	for i := 0; i < chartDays; i++ {
		label := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		chart = append(chart, ChartEntry{
			Date:    label,
			Revenue: byDate[label],
		})
	}
	return chart, nil
}
