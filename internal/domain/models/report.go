package models

import "time"

// DashboardMetrics is the aggregate view served to the dashboard screen.
type DashboardMetrics struct {
	TotalStock      int              `json:"totalStock"`
	StockValue      float64          `json:"stockValue"`
	InCount         int              `json:"inCount"`
	OutCount        int              `json:"outCount"`
	LowStockItems   []ItemWithTotals `json:"lowStockItems"`
	RecentMovements []StockMovement  `json:"recentMovements"`
	TopItems        []ItemWithTotals `json:"topItems"`
}

// DailyStockReport is the scheduled end-of-day snapshot stored in MongoDB.
type DailyStockReport struct {
	Date             time.Time `bson:"date" json:"date"`
	ItemCount        int       `bson:"item_count" json:"item_count"`
	TotalStock       int       `bson:"total_stock" json:"total_stock"`
	StockValue       float64   `bson:"stock_value" json:"stock_value"`
	TotalIn          int       `bson:"total_in" json:"total_in"`
	TotalOut         int       `bson:"total_out" json:"total_out"`
	LowStockCount    int       `bson:"low_stock_count" json:"low_stock_count"`
	DivergentSerials []string  `bson:"divergent_serials" json:"divergent_serials"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
