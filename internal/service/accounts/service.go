// Package accounts implements the settings screen's user administration on
// top of the login sheet.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/repository/sheetdb"
	"github.com/karanvs/stockbook/internal/repository/sheetdb/rowmap"
)

var (
	// ErrMasterAdmin guards the first account row from deletion.
	ErrMasterAdmin = errors.New("accounts: the master administrator cannot be removed")
	// ErrMissingFields is returned when a create/update lacks required fields.
	ErrMissingFields = errors.New("accounts: login id and password are required")
)

var serialPattern = regexp.MustCompile(`SN-(\d+)`)

// Service manages login accounts.
type Service struct {
	store      sheetdb.Store
	loginSheet string
	logger     *zap.Logger
}

// NewService wires an account administration service.
func NewService(store sheetdb.Store, loginSheet string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, loginSheet: loginSheet, logger: logger}
}

// List fetches all accounts, including the stored plaintext passwords; the
// settings screen edits them in place.
func (s *Service) List(ctx context.Context) ([]models.Account, error) {
	rows, err := s.store.FetchSheet(ctx, s.loginSheet, sheetdb.WithGetDataAction())
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return rowmap.Accounts(rows), nil
}

// Create appends a new account row, deriving its serial from the last one.
func (s *Service) Create(ctx context.Context, account models.Account) (models.Account, error) {
	if strings.TrimSpace(account.LoginID) == "" || account.Password == "" {
		return models.Account{}, ErrMissingFields
	}

	existing, err := s.List(ctx)
	if err != nil {
		return models.Account{}, err
	}

	account.SerialNo = nextSerial(existing)
	if account.Role == "" {
		account.Role = "User"
	}

	if err := s.store.Insert(ctx, s.loginSheet, rowmap.AccountRow(account)); err != nil {
		return models.Account{}, fmt.Errorf("insert account row: %w", err)
	}

	s.logger.Info("account created", zap.String("serial", account.SerialNo), zap.String("login_id", account.LoginID))
	return account, nil
}

// Update overwrites the account at its spreadsheet row.
func (s *Service) Update(ctx context.Context, rowIndex int, account models.Account) error {
	if strings.TrimSpace(account.LoginID) == "" || account.Password == "" {
		return ErrMissingFields
	}

	if err := s.store.Update(ctx, s.loginSheet, rowIndex, rowmap.AccountRow(account)); err != nil {
		return fmt.Errorf("update account row %d: %w", rowIndex, err)
	}

	s.logger.Info("account updated", zap.Int("row", rowIndex), zap.String("login_id", account.LoginID))
	return nil
}

// Delete removes the account at the given row. Row 2, the master
// administrator, is unremovable.
func (s *Service) Delete(ctx context.Context, rowIndex int) error {
	if rowIndex == models.MasterAdminRowIndex {
		return ErrMasterAdmin
	}

	if err := s.store.Delete(ctx, s.loginSheet, rowIndex); err != nil {
		return fmt.Errorf("delete account row %d: %w", rowIndex, err)
	}

	s.logger.Info("account deleted", zap.Int("row", rowIndex))
	return nil
}

// nextSerial continues the SN-number sequence from the last account's serial,
// falling back to the row count when the serial does not parse.
func nextSerial(existing []models.Account) string {
	if len(existing) == 0 {
		return "SN-001"
	}

	last := existing[len(existing)-1]
	if match := serialPattern.FindStringSubmatch(last.SerialNo); len(match) > 1 {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return fmt.Sprintf("SN-%03d", n+1)
		}
	}
	return fmt.Sprintf("SN-%03d", len(existing)+1)
}
