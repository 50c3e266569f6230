package models

// MovementDirection marks a stock movement as inbound or outbound.
type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// StockMovement is one IN/OUT event from the history sheet. Movements are
// append-only: nothing in this service updates or deletes them.
type StockMovement struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	SerialNumber string            `json:"serialNumber"`
	Direction    MovementDirection `json:"status"`
	Counterparty string            `json:"vendorName"`
	Qty          int               `json:"qty"`
}
