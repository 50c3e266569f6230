// Package auth holds the session/authorization state machine. A caller is
// either anonymous or authenticated; authenticated state lives server-side
// keyed by an opaque bearer token and carries the account's page access.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/repository/sheetdb"
	"github.com/karanvs/stockbook/internal/repository/sheetdb/rowmap"
)

// SessionStore persists authenticated sessions across restarts.
type SessionStore interface {
	SaveSession(ctx context.Context, session models.Session) error
	FindSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	SetSessionScreen(ctx context.Context, token, screen string) error
}

// Service authenticates against the login sheet and tracks sessions.
type Service struct {
	store      sheetdb.Store
	sessions   SessionStore
	loginSheet string
	logger     *zap.Logger
}

// NewService wires the auth service.
func NewService(store sheetdb.Store, sessions SessionStore, loginSheet string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, sessions: sessions, loginSheet: loginSheet, logger: logger}
}

// Login re-reads the full account list from the backing store (credentials
// are never cached between attempts) and scans for an exact login id and
// password match. On success it creates and persists a session; on any
// failure, including transport or format errors, it reports false and leaves
// no state behind. The cause is logged, never returned: the HTTP surface
// shows one generic message either way.
func (s *Service) Login(ctx context.Context, loginID, password string) (*models.Session, bool) {
	rows, err := s.store.FetchSheet(ctx, s.loginSheet, sheetdb.WithGetDataAction())
	if err != nil {
		s.logger.Warn("login sheet fetch failed", zap.Error(err))
		return nil, false
	}

	accounts := rowmap.Accounts(rows)
	for _, account := range accounts {
		if account.LoginID != loginID || account.Password != password {
			continue
		}

		session := models.Session{
			Token:        uuid.NewString(),
			Account:      account,
			ActiveScreen: ResolveScreen(account, ""),
			CreatedAt:    time.Now(),
		}

		if err := s.sessions.SaveSession(ctx, session); err != nil {
			s.logger.Error("failed to persist session", zap.Error(err))
			return nil, false
		}

		s.logger.Info("login succeeded", zap.String("login_id", loginID), zap.String("role", account.Role))
		return &session, true
	}

	s.logger.Info("login rejected", zap.String("login_id", loginID))
	return nil, false
}

// Logout clears the session unconditionally. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) {
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		s.logger.Warn("failed to delete session", zap.Error(err))
	}
}

// Session restores an authenticated session by token. The active screen is
// re-resolved against the account's page access on every restore, so a saved
// screen the account can no longer view falls back to its first permitted
// one.
func (s *Service) Session(ctx context.Context, token string) (*models.Session, bool) {
	if token == "" {
		return nil, false
	}

	session, err := s.sessions.FindSession(ctx, token)
	if err != nil || session == nil {
		return nil, false
	}

	resolved := ResolveScreen(session.Account, session.ActiveScreen)
	if resolved != session.ActiveScreen {
		session.ActiveScreen = resolved
		if err := s.sessions.SetSessionScreen(ctx, token, resolved); err != nil {
			s.logger.Warn("failed to persist resolved screen", zap.Error(err))
		}
	}

	return session, true
}

// SetActiveScreen records the screen the caller navigated to. Screens outside
// the account's page access resolve to the fallback instead of an error,
// mirroring the navigation behavior on session restore.
func (s *Service) SetActiveScreen(ctx context.Context, session *models.Session, screen string) string {
	resolved := ResolveScreen(session.Account, screen)
	session.ActiveScreen = resolved
	if err := s.sessions.SetSessionScreen(ctx, session.Token, resolved); err != nil {
		s.logger.Warn("failed to persist screen selection", zap.Error(err))
	}
	return resolved
}

// PermittedScreens returns the case-normalized screens the account may view,
// in navigation order. An account with no page-access list may view every
// screen; existing rows predate the column and full access keeps them
// working.
func PermittedScreens(account models.Account) []string {
	if len(account.PageAccess) == 0 {
		return models.AllScreens
	}

	allowed := make(map[string]struct{}, len(account.PageAccess))
	for _, page := range account.PageAccess {
		allowed[strings.ToLower(strings.TrimSpace(page))] = struct{}{}
	}

	screens := make([]string, 0, len(allowed))
	for _, screen := range models.AllScreens {
		if _, ok := allowed[screen]; ok {
			screens = append(screens, screen)
		}
	}
	return screens
}

// Allowed reports whether the account may view the named screen.
func Allowed(account models.Account, screen string) bool {
	screen = strings.ToLower(screen)
	for _, permitted := range PermittedScreens(account) {
		if permitted == screen {
			return true
		}
	}
	return false
}

// ResolveScreen picks the active screen for an account: the saved screen when
// it is still permitted, otherwise the account's first permitted screen.
func ResolveScreen(account models.Account, saved string) string {
	permitted := PermittedScreens(account)
	if len(permitted) == 0 {
		return models.ScreenDashboard
	}

	saved = strings.ToLower(saved)
	for _, screen := range permitted {
		if screen == saved {
			return saved
		}
	}
	return permitted[0]
}
