package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanvs/stockbook/internal/config"
	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/repository/sheetdb"
)

type stubStore struct {
	sheets  map[string][][]any
	fetchErr error

	inserts   []insertCall
	uploads   []sheetdb.UploadRequest
	uploadURL string
}

type insertCall struct {
	sheet string
	row   []string
}

func (s *stubStore) FetchSheet(_ context.Context, sheet string, _ ...sheetdb.FetchOption) ([][]any, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.sheets[sheet], nil
}

func (s *stubStore) Insert(_ context.Context, sheet string, row []string) error {
	s.inserts = append(s.inserts, insertCall{sheet: sheet, row: row})
	return nil
}

func (s *stubStore) Update(_ context.Context, _ string, _ int, _ []string) error { return nil }

func (s *stubStore) Delete(_ context.Context, _ string, _ int) error { return nil }

func (s *stubStore) UploadFile(_ context.Context, req sheetdb.UploadRequest) (string, error) {
	s.uploads = append(s.uploads, req)
	return s.uploadURL, nil
}

func testSheets() config.SheetsConfig {
	return config.SheetsConfig{
		Inventory: "Inventory",
		History:   "History",
		Login:     "Login Master",
		Dropdown:  "Master Drop Down",
	}
}

func inventoryRow(serial, name string, qty string) []any {
	return []any{"01/02/2024 10:00:00", serial, "", name, "", "", "", "", "", "10", "", "0", "0", "0", qty, "0", "", "", "", ""}
}

func newTestService(store *stubStore) *Service {
	svc := NewService(store, testSheets(), "folder-1", nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC) }
	return svc
}

func TestRecordMovementOutGuardRejectsBeforeWrite(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{
		"Inventory": {
			{"header"},
			inventoryRow("SN-001", "Widget", "3"),
		},
	}}
	svc := newTestService(store)

	err := svc.RecordMovement(context.Background(), MovementRequest{
		SerialNumber: "SN-001",
		Direction:    models.MovementOut,
		Counterparty: "Acme",
		Qty:          5,
	})

	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, store.inserts, "a rejected movement must not reach the backing store")
}

func TestRecordMovementOutWithinStock(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{
		"Inventory": {
			{"header"},
			inventoryRow("SN-001", "Widget", "3"),
		},
	}}
	svc := newTestService(store)

	err := svc.RecordMovement(context.Background(), MovementRequest{
		SerialNumber: "SN-001",
		Direction:    models.MovementOut,
		Counterparty: "Acme",
		Qty:          3,
	})

	require.NoError(t, err)
	require.Len(t, store.inserts, 1)
	assert.Equal(t, "History", store.inserts[0].sheet)
	assert.Equal(t, []string{"05/03/2024", "SN-001", "OUT", "Acme", "3"}, store.inserts[0].row)
}

func TestRecordMovementInSkipsStockGuard(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{
		"Inventory": {
			{"header"},
			inventoryRow("SN-001", "Widget", "0"),
		},
	}}
	svc := newTestService(store)

	err := svc.RecordMovement(context.Background(), MovementRequest{
		SerialNumber: "SN-001",
		Direction:    models.MovementIn,
		Counterparty: "Acme",
		Qty:          100,
	})

	require.NoError(t, err)
	require.Len(t, store.inserts, 1)
	assert.Equal(t, "IN", store.inserts[0].row[2])
}

func TestRecordMovementValidation(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{
		"Inventory": {{"header"}, inventoryRow("SN-001", "Widget", "5")},
	}}
	svc := newTestService(store)

	err := svc.RecordMovement(context.Background(), MovementRequest{SerialNumber: "SN-001", Direction: models.MovementIn, Qty: 0})
	assert.ErrorIs(t, err, ErrInvalidQty)

	err = svc.RecordMovement(context.Background(), MovementRequest{SerialNumber: "SN-404", Direction: models.MovementIn, Qty: 1})
	assert.ErrorIs(t, err, ErrUnknownSerial)

	assert.Empty(t, store.inserts)
}

func TestAddItemGeneratesSerialFromRowCount(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{
		"Inventory": {
			{"header"},
			inventoryRow("SN-001", "Widget", "3"),
			inventoryRow("SN-002", "Gadget", "8"),
		},
	}}
	svc := newTestService(store)

	serial, err := svc.AddItem(context.Background(), AddItemRequest{Name: "Sprocket", OpeningQty: 4, Price: 25})
	require.NoError(t, err)
	assert.Equal(t, "SN-003", serial)

	require.Len(t, store.inserts, 1)
	row := store.inserts[0].row
	require.Len(t, row, 20)
	assert.Equal(t, "05/03/2024 14:30:45", row[0])
	assert.Equal(t, "SN-003", row[1])
	assert.Equal(t, "Sprocket", row[3])
	assert.Equal(t, "25", row[9])
	assert.Equal(t, "4", row[11])
}

func TestAddItemUploadsInlineImage(t *testing.T) {
	store := &stubStore{
		sheets: map[string][][]any{
			"Inventory": {{"header"}},
		},
		uploadURL: "https://drive.google.com/file/d/UPLOADED/view",
	}
	svc := newTestService(store)

	_, err := svc.AddItem(context.Background(), AddItemRequest{
		Name:  "Sprocket",
		Image: "data:image/png;base64,aGVsbG8=",
	})
	require.NoError(t, err)

	require.Len(t, store.uploads, 1)
	assert.Equal(t, "aGVsbG8=", store.uploads[0].Base64Data)
	assert.Equal(t, "image/png", store.uploads[0].MimeType)
	assert.Equal(t, "folder-1", store.uploads[0].FolderID)

	require.Len(t, store.inserts, 1)
	assert.Equal(t, "https://drive.google.com/file/d/UPLOADED/view", store.inserts[0].row[2])
}

func TestAddItemKeepsExternalImageLink(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{"Inventory": {{"header"}}}}
	svc := newTestService(store)

	_, err := svc.AddItem(context.Background(), AddItemRequest{
		Name:  "Sprocket",
		Image: "https://drive.google.com/file/d/EXISTING/view",
	})
	require.NoError(t, err)

	assert.Empty(t, store.uploads)
	assert.Equal(t, "https://drive.google.com/file/d/EXISTING/view", store.inserts[0].row[2])
}

func TestMovementsNewestFirst(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{
		"History": {
			{"header"},
			{"01/02/2024", "SN-001", "IN", "Acme", "5"},
			{"02/02/2024", "SN-001", "OUT", "Bolt", "2"},
		},
	}}
	svc := newTestService(store)

	movements, err := svc.Movements(context.Background())
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, "02/02/2024", movements[0].Date)
	assert.Equal(t, "01/02/2024", movements[1].Date)
}

func TestListWithTotalsPrefersLiveTally(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{
		"Inventory": {
			{"header"},
			{"", "SN-001", "", "Widget", "", "", "", "", "", "10", "", "0", "99", "99", "3", "0", "", "", "", ""},
		},
		"History": {
			{"header"},
			{"01/02/2024", "SN-001", "IN", "Acme", "5"},
			{"02/02/2024", "SN-001", "OUT", "Bolt", "2"},
		},
	}}
	svc := newTestService(store)

	items, err := svc.ListWithTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Snapshot columns survive untouched; the live tally rides alongside.
	assert.Equal(t, 99, items[0].TotalIn)
	assert.Equal(t, models.MovementTotals{In: 5, Out: 2}, items[0].Live)
}

func TestNextSerialOnEmptySheet(t *testing.T) {
	store := &stubStore{sheets: map[string][][]any{"Inventory": {{"header"}}}}
	svc := newTestService(store)

	serial, err := svc.NextSerial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SN-001", serial)
}
