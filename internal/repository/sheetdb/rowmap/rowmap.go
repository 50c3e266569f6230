// Package rowmap translates positional, untyped spreadsheet rows into typed
// records and back. The backing store is schemaless text, so decoding is
// deliberately lenient: a row is kept when its presence column is non-empty,
// numeric cells fall back to zero, string cells to "". Nothing here returns
// an error.
package rowmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/karanvs/stockbook/internal/domain/models"
)

// Inventory sheet columns (A through T).
const (
	invColCreatedAt = iota
	invColSerialNo
	invColImage
	invColName
	invColProductCode
	invColBrand
	invColModel
	invColSize
	invColColor
	invColPrice
	invColSpecification
	invColOpeningQty
	invColTotalIn
	invColTotalOut
	invColQty
	invColStockValue
	invColLastPurchase
	invColLastSales
	invColCategory
	invColCustomisation
	invColumnCount
)

// History sheet columns (A through E).
const (
	movColDate = iota
	movColSerial
	movColDirection
	movColCounterparty
	movColQty
	movColumnCount
)

// Login sheet columns (A through F).
const (
	accColSerialNo = iota
	accColDisplayName
	accColLoginID
	accColPassword
	accColRole
	accColPageAccess
	accColumnCount
)

// Items decodes inventory rows. The first row is treated as a header and
// skipped; a row is kept only when the product name column is present.
func Items(rows [][]any) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if cell(row, invColName) == "" {
			continue
		}

		rawImage := cell(row, invColImage)
		items = append(items, models.InventoryItem{
			ID:               strconv.Itoa(i),
			RowIndex:         i + 1,
			CreatedAt:        cell(row, invColCreatedAt),
			InventoryNo:      cell(row, invColSerialNo),
			Image:            DisplayImageURL(rawImage),
			RawImage:         rawImage,
			Name:             cell(row, invColName),
			ProductCode:      cell(row, invColProductCode),
			Brand:            cell(row, invColBrand),
			Model:            cell(row, invColModel),
			Size:             cell(row, invColSize),
			Color:            cell(row, invColColor),
			Price:            cellFloat(row, invColPrice),
			Specification:    cell(row, invColSpecification),
			OpeningQty:       cellInt(row, invColOpeningQty),
			TotalIn:          cellInt(row, invColTotalIn),
			TotalOut:         cellInt(row, invColTotalOut),
			Qty:              cellInt(row, invColQty),
			StockValue:       cellFloat(row, invColStockValue),
			LastPurchaseDate: cell(row, invColLastPurchase),
			LastSalesDate:    cell(row, invColLastSales),
			Category:         cell(row, invColCategory),
			Customisation:    cell(row, invColCustomisation),
		})
	}
	return items
}

// Movements decodes history rows in sheet order (oldest first). A row is kept
// only when its serial number column is present. Any direction other than IN
// is read as OUT.
func Movements(rows [][]any) []models.StockMovement {
	movements := make([]models.StockMovement, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if cell(row, movColSerial) == "" {
			continue
		}

		direction := models.MovementOut
		if strings.EqualFold(cell(row, movColDirection), string(models.MovementIn)) {
			direction = models.MovementIn
		}

		movements = append(movements, models.StockMovement{
			ID:           strconv.Itoa(i),
			Date:         cell(row, movColDate),
			SerialNumber: cell(row, movColSerial),
			Direction:    direction,
			Counterparty: cell(row, movColCounterparty),
			Qty:          cellInt(row, movColQty),
		})
	}
	return movements
}

// Accounts decodes login rows. A row is kept only when its serial column is
// present. RowIndex is the 1-based spreadsheet row, used for update/delete.
func Accounts(rows [][]any) []models.Account {
	accounts := make([]models.Account, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if cell(row, accColSerialNo) == "" {
			continue
		}

		role := cell(row, accColRole)
		if role == "" {
			role = "User"
		}

		accounts = append(accounts, models.Account{
			RowIndex:    i + 1,
			SerialNo:    cell(row, accColSerialNo),
			DisplayName: cell(row, accColDisplayName),
			LoginID:     cell(row, accColLoginID),
			Password:    cell(row, accColPassword),
			Role:        role,
			PageAccess:  splitPageAccess(cell(row, accColPageAccess)),
		})
	}
	return accounts
}

// Dropdown decodes a single-column sheet of option values, deduplicated.
func Dropdown(rows [][]any) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		value := strings.TrimSpace(cell(rows[i], 0))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}

// ItemRow encodes a new inventory record into its 20-column row. The computed
// columns M through R stay blank; the backing store maintains them.
func ItemRow(item models.InventoryItem) []string {
	row := make([]string, invColumnCount)
	row[invColCreatedAt] = item.CreatedAt
	row[invColSerialNo] = item.InventoryNo
	row[invColImage] = item.RawImage
	row[invColName] = item.Name
	row[invColProductCode] = item.ProductCode
	row[invColBrand] = item.Brand
	row[invColModel] = item.Model
	row[invColSize] = item.Size
	row[invColColor] = item.Color
	row[invColPrice] = trimFloat(item.Price)
	row[invColSpecification] = item.Specification
	row[invColOpeningQty] = strconv.Itoa(item.OpeningQty)
	row[invColCategory] = item.Category
	row[invColCustomisation] = item.Customisation
	return row
}

// MovementRow encodes a stock movement into its 5-column row.
func MovementRow(m models.StockMovement) []string {
	return []string{
		m.Date,
		m.SerialNumber,
		string(m.Direction),
		m.Counterparty,
		strconv.Itoa(m.Qty),
	}
}

// AccountRow encodes an account into its 6-column row. Page access is stored
// as a quoted, comma-joined list, matching the rows already in the sheet.
func AccountRow(a models.Account) []string {
	quoted := make([]string, 0, len(a.PageAccess))
	for _, page := range a.PageAccess {
		quoted = append(quoted, fmt.Sprintf("%q", page))
	}

	return []string{
		a.SerialNo,
		a.DisplayName,
		a.LoginID,
		a.Password,
		a.Role,
		strings.Join(quoted, ", "),
	}
}

func splitPageAccess(raw string) []string {
	raw = strings.ReplaceAll(raw, `"`, "")
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	pages := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}
	if len(pages) == 0 {
		return nil
	}
	return pages
}

func cell(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func cellInt(row []any, idx int) int {
	value := cell(row, idx)
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		// Sheets frequently hands back "5.0" for integer cells.
		if f, ferr := strconv.ParseFloat(value, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return parsed
}

func cellFloat(row []any, idx int) float64 {
	value := cell(row, idx)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
