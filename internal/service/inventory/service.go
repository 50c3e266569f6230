package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/config"
	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/repository/sheetdb"
	"github.com/karanvs/stockbook/internal/repository/sheetdb/rowmap"
)

const (
	timestampLayout = "02/01/2006 15:04:05"
	dateLayout      = "02/01/2006"
)

// Validation failures surfaced to the HTTP layer as 400s.
var (
	ErrUnknownSerial     = errors.New("inventory: unknown serial number")
	ErrInvalidQty        = errors.New("inventory: quantity must be a positive integer")
	ErrInsufficientStock = errors.New("inventory: quantity exceeds available stock")
	ErrMissingName       = errors.New("inventory: product name is required")
)

// Service owns inventory listings, item creation and stock movements.
type Service struct {
	store  sheetdb.Store
	sheets config.SheetsConfig
	folder string
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires an inventory service instance.
func NewService(store sheetdb.Store, sheets config.SheetsConfig, folderID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, sheets: sheets, folder: folderID, logger: logger, now: time.Now}
}

// List fetches and decodes the inventory sheet.
func (s *Service) List(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := s.store.FetchSheet(ctx, s.sheets.Inventory)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	return rowmap.Items(rows), nil
}

// Movements fetches the history sheet, newest first.
func (s *Service) Movements(ctx context.Context) ([]models.StockMovement, error) {
	rows, err := s.store.FetchSheet(ctx, s.sheets.History)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	movements := rowmap.Movements(rows)
	reverse(movements)
	return movements, nil
}

// ListWithTotals returns inventory annotated with the live per-serial tally
// recomputed from the full movement history.
func (s *Service) ListWithTotals(ctx context.Context) ([]models.ItemWithTotals, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	movements, err := s.Movements(ctx)
	if err != nil {
		return nil, err
	}

	return Annotate(items, Totals(movements)), nil
}

// Categories reads the dropdown sheet's first column.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.store.FetchSheet(ctx, s.sheets.Dropdown)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return rowmap.Dropdown(rows), nil
}

// AddItemRequest carries the add-inventory form fields. Image may be a Drive
// link or a data URI; data URIs are uploaded first and replaced by the hosted
// URL.
type AddItemRequest struct {
	Name          string
	ProductCode   string
	Brand         string
	Model         string
	Size          string
	Color         string
	Price         float64
	Specification string
	OpeningQty    int
	Category      string
	Customisation string
	Image         string
}

// AddItem generates the next serial, uploads an inline image if present, and
// appends the item row. Returns the assigned serial number.
func (s *Service) AddItem(ctx context.Context, req AddItemRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", ErrMissingName
	}
	if req.OpeningQty < 0 {
		return "", ErrInvalidQty
	}

	image := req.Image
	if strings.HasPrefix(image, "data:") {
		hosted, err := s.uploadInlineImage(ctx, image)
		if err != nil {
			return "", err
		}
		image = hosted
	}

	serial, err := s.NextSerial(ctx)
	if err != nil {
		return "", err
	}

	row := rowmap.ItemRow(models.InventoryItem{
		CreatedAt:     s.now().Format(timestampLayout),
		InventoryNo:   serial,
		RawImage:      image,
		Name:          req.Name,
		ProductCode:   req.ProductCode,
		Brand:         req.Brand,
		Model:         req.Model,
		Size:          req.Size,
		Color:         req.Color,
		Price:         req.Price,
		Specification: req.Specification,
		OpeningQty:    req.OpeningQty,
		Category:      req.Category,
		Customisation: req.Customisation,
	})

	if err := s.store.Insert(ctx, s.sheets.Inventory, row); err != nil {
		return "", fmt.Errorf("insert inventory row: %w", err)
	}

	s.logger.Info("inventory item added", zap.String("serial", serial), zap.String("name", req.Name))
	return serial, nil
}

// MovementRequest carries an IN/OUT submission.
type MovementRequest struct {
	SerialNumber string
	Direction    models.MovementDirection
	Counterparty string
	Qty          int
}

// RecordMovement appends one stock movement. An OUT movement is checked
// against the item's current quantity before any write goes out; the check
// is not atomic against concurrent writers, which is the same gap the
// backing store has always had.
func (s *Service) RecordMovement(ctx context.Context, req MovementRequest) error {
	if req.Qty <= 0 {
		return ErrInvalidQty
	}
	if req.Direction != models.MovementIn && req.Direction != models.MovementOut {
		return fmt.Errorf("inventory: direction must be IN or OUT")
	}

	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	var item *models.InventoryItem
	for i := range items {
		if items[i].InventoryNo == req.SerialNumber {
			item = &items[i]
			break
		}
	}
	if item == nil {
		return ErrUnknownSerial
	}

	if req.Direction == models.MovementOut && req.Qty > item.Qty {
		return fmt.Errorf("%w: have %d, requested %d", ErrInsufficientStock, item.Qty, req.Qty)
	}

	row := rowmap.MovementRow(models.StockMovement{
		Date:         s.now().Format(dateLayout),
		SerialNumber: req.SerialNumber,
		Direction:    req.Direction,
		Counterparty: req.Counterparty,
		Qty:          req.Qty,
	})

	if err := s.store.Insert(ctx, s.sheets.History, row); err != nil {
		return fmt.Errorf("insert movement row: %w", err)
	}

	s.logger.Info("stock movement recorded",
		zap.String("serial", req.SerialNumber),
		zap.String("direction", string(req.Direction)),
		zap.Int("qty", req.Qty))
	return nil
}

// NextSerial derives the next SN-number from the inventory row count, header
// excluded.
func (s *Service) NextSerial(ctx context.Context) (string, error) {
	rows, err := s.store.FetchSheet(ctx, s.sheets.Inventory)
	if err != nil {
		return "", fmt.Errorf("count inventory rows: %w", err)
	}

	count := len(rows)
	if count > 0 {
		count--
	}
	return fmt.Sprintf("SN-%03d", count+1), nil
}

func (s *Service) uploadInlineImage(ctx context.Context, dataURI string) (string, error) {
	mimeType := "image/jpeg"
	payload := dataURI

	if rest, ok := strings.CutPrefix(dataURI, "data:"); ok {
		if meta, data, found := strings.Cut(rest, ","); found {
			payload = data
			if mt, _, _ := strings.Cut(meta, ";"); mt != "" {
				mimeType = mt
			}
		}
	}

	url, err := s.store.UploadFile(ctx, sheetdb.UploadRequest{
		Base64Data: payload,
		FileName:   fmt.Sprintf("product-%d.jpg", s.now().UnixMilli()),
		MimeType:   mimeType,
		FolderID:   s.folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload product image: %w", err)
	}
	return url, nil
}

func reverse(movements []models.StockMovement) {
	for i, j := 0, len(movements)-1; i < j; i, j = i+1, j-1 {
		movements[i], movements[j] = movements[j], movements[i]
	}
}
