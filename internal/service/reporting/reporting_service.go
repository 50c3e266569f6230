package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/service/inventory"
)

const recentMovementLimit = 5

// Service computes dashboard metrics and daily stock snapshots from the live
// inventory and movement data.
type Service struct {
	inventory         *inventory.Service
	lowStockThreshold int
	logger            *zap.Logger
}

// NewService wires a reporting service instance.
func NewService(inventorySvc *inventory.Service, lowStockThreshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{inventory: inventorySvc, lowStockThreshold: lowStockThreshold, logger: logger}
}

// Dashboard aggregates the metrics the dashboard screen renders. Data is
// fetched fresh on every call; there is no cache between requests.
func (s *Service) Dashboard(ctx context.Context) (models.DashboardMetrics, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("dashboard inventory: %w", err)
	}

	movements, err := s.inventory.Movements(ctx)
	if err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("dashboard history: %w", err)
	}

	totals := inventory.Totals(movements)
	annotated := inventory.Annotate(items, totals)

	metrics := models.DashboardMetrics{
		LowStockItems:   s.LowStock(annotated),
		RecentMovements: capMovements(movements, recentMovementLimit),
		TopItems:        capItems(annotated, recentMovementLimit),
	}

	for _, item := range items {
		metrics.TotalStock += item.Qty
		metrics.StockValue += item.StockValue
	}
	for _, m := range movements {
		if m.Direction == models.MovementIn {
			metrics.InCount++
		} else {
			metrics.OutCount++
		}
	}

	return metrics, nil
}

// LowStock filters items under the configured threshold.
func (s *Service) LowStock(items []models.ItemWithTotals) []models.ItemWithTotals {
	low := make([]models.ItemWithTotals, 0)
	for _, item := range items {
		if item.Qty < s.lowStockThreshold {
			low = append(low, item)
		}
	}
	return low
}

// Snapshot builds the end-of-day stock report, including the serials whose
// stored totals have drifted from the recomputed movement tally.
func (s *Service) Snapshot(ctx context.Context) (models.DailyStockReport, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return models.DailyStockReport{}, fmt.Errorf("snapshot inventory: %w", err)
	}

	movements, err := s.inventory.Movements(ctx)
	if err != nil {
		return models.DailyStockReport{}, fmt.Errorf("snapshot history: %w", err)
	}

	totals := inventory.Totals(movements)

	now := time.Now()
	report := models.DailyStockReport{
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		ItemCount: len(items),
		CreatedAt: now,
	}

	for _, item := range items {
		report.TotalStock += item.Qty
		report.StockValue += item.StockValue

		live := totals[item.InventoryNo]
		report.TotalIn += live.In
		report.TotalOut += live.Out

		if item.Qty < s.lowStockThreshold {
			report.LowStockCount++
		}
		if item.TotalIn != live.In || item.TotalOut != live.Out {
			report.DivergentSerials = append(report.DivergentSerials, item.InventoryNo)
		}
	}

	if len(report.DivergentSerials) > 0 {
		s.logger.Warn("stored totals diverge from movement history",
			zap.Strings("serials", report.DivergentSerials))
	}

	return report, nil
}

func capMovements(movements []models.StockMovement, limit int) []models.StockMovement {
	if len(movements) > limit {
		return movements[:limit]
	}
	return movements
}

func capItems(items []models.ItemWithTotals, limit int) []models.ItemWithTotals {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
