package models

// InventoryItem is one stocked product line, decoded from a positional
// spreadsheet row (columns A through T).
type InventoryItem struct {
	ID            string  `json:"id"`
	RowIndex      int     `json:"rowIndex"`
	CreatedAt     string  `json:"createdAt"`
	InventoryNo   string  `json:"inventoryNo"`
	Image         string  `json:"image"`
	RawImage      string  `json:"imageUrl"`
	Name          string  `json:"name"`
	ProductCode   string  `json:"productCode"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Size          string  `json:"size"`
	Color         string  `json:"color"`
	Price         float64 `json:"price"`
	Specification string  `json:"specification"`
	OpeningQty    int     `json:"openingQty"`

	// TotalIn/TotalOut are the snapshot columns maintained by the backing
	// store. They can lag behind the movement history; listings carry the
	// live recomputation alongside and prefer it for display.
	TotalIn  int `json:"totalIn"`
	TotalOut int `json:"totalOut"`

	// Qty is the authoritative current stock level (column O).
	Qty int `json:"qty"`

	StockValue       float64 `json:"stockValue"`
	LastPurchaseDate string  `json:"lastPurchaseDate"`
	LastSalesDate    string  `json:"lastSalesDate"`
	Category         string  `json:"category"`
	Customisation    string  `json:"customisationAvailable"`
}

// MovementTotals is the per-serial tally derived from the movement history.
type MovementTotals struct {
	In  int `json:"in"`
	Out int `json:"out"`
}

// ItemWithTotals pairs an inventory row with its live movement tally.
type ItemWithTotals struct {
	InventoryItem
	Live MovementTotals `json:"live"`
}
