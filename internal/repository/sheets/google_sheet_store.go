// Package sheets implements the sheetdb.Store interface directly against the
// Google Sheets API, for deployments that hold service-account credentials
// instead of going through the Apps Script web endpoint.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/karanvs/stockbook/internal/config"
	"github.com/karanvs/stockbook/internal/repository/sheetdb"
)

// GoogleSheetStore is a sheetdb.Store backed by the official Sheets API.
type GoogleSheetStore struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetStore builds a Sheets API backed store instance.
func NewGoogleSheetStore(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetStore{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// FetchSheet returns all rows of the named sheet. The getData action marker
// is an Apps Script concern and is ignored here.
func (s *GoogleSheetStore) FetchSheet(ctx context.Context, sheet string, _ ...sheetdb.FetchOption) ([][]any, error) {
	if sheet == "" {
		return nil, fmt.Errorf("%w: sheet name must not be empty", sheetdb.ErrFormat)
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", sheetdb.ErrTransport, sheet, err)
	}

	return resp.Values, nil
}

// Insert appends the row to the named sheet.
func (s *GoogleSheetStore) Insert(ctx context.Context, sheet string, row []string) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{toAnyRow(row)}}

	call := s.service.Spreadsheets.Values.Append(s.spreadsheetID, sheet, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("%w: append row into sheet %s: %v", sheetdb.ErrTransport, sheet, err)
	}

	s.logger.Debug("row appended to sheet", zap.String("sheet", sheet))
	return nil
}

// Update overwrites the 1-based row at rowIndex.
func (s *GoogleSheetStore) Update(ctx context.Context, sheet string, rowIndex int, row []string) error {
	if rowIndex < 1 {
		return fmt.Errorf("%w: row index %d out of range", sheetdb.ErrFormat, rowIndex)
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{toAnyRow(row)}}
	writeRange := fmt.Sprintf("%s!A%d", sheet, rowIndex)

	call := s.service.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, payload).
		ValueInputOption("USER_ENTERED").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("%w: update range %s: %v", sheetdb.ErrTransport, writeRange, err)
	}

	s.logger.Debug("row updated", zap.String("range", writeRange))
	return nil
}

// Delete removes the 1-based row at rowIndex. The Values API cannot delete a
// dimension, so this resolves the numeric sheet id and issues a batch update.
func (s *GoogleSheetStore) Delete(ctx context.Context, sheet string, rowIndex int) error {
	if rowIndex < 1 {
		return fmt.Errorf("%w: row index %d out of range", sheetdb.ErrFormat, rowIndex)
	}

	sheetID, err := s.sheetID(ctx, sheet)
	if err != nil {
		return err
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}

	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete row %d from sheet %s: %v", sheetdb.ErrTransport, rowIndex, sheet, err)
	}

	s.logger.Debug("row deleted", zap.String("sheet", sheet), zap.Int("row", rowIndex))
	return nil
}

// UploadFile is not supported by this driver; only the Apps Script endpoint
// has Drive access.
func (s *GoogleSheetStore) UploadFile(_ context.Context, _ sheetdb.UploadRequest) (string, error) {
	return "", fmt.Errorf("%w: file upload requires the appsscript driver", sheetdb.ErrApplication)
}

func (s *GoogleSheetStore) sheetID(ctx context.Context, sheet string) (int64, error) {
	meta, err := s.service.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: read spreadsheet metadata: %v", sheetdb.ErrTransport, err)
	}

	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheet {
			return sh.Properties.SheetId, nil
		}
	}

	return 0, fmt.Errorf("%w: sheet %s not found", sheetdb.ErrApplication, sheet)
}

func toAnyRow(row []string) []interface{} {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	return values
}
