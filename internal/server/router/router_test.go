package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanvs/stockbook/internal/config"
	"github.com/karanvs/stockbook/internal/repository/sheetdb"
	"github.com/karanvs/stockbook/internal/server/handlers"
	accountssvc "github.com/karanvs/stockbook/internal/service/accounts"
	authsvc "github.com/karanvs/stockbook/internal/service/auth"
	inventorysvc "github.com/karanvs/stockbook/internal/service/inventory"
	reportingsvc "github.com/karanvs/stockbook/internal/service/reporting"
)

type stubStore struct {
	sheets   map[string][][]any
	fetchErr error
}

func (s *stubStore) FetchSheet(_ context.Context, sheet string, _ ...sheetdb.FetchOption) ([][]any, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.sheets[sheet], nil
}

func (s *stubStore) Insert(_ context.Context, _ string, _ []string) error        { return nil }
func (s *stubStore) Update(_ context.Context, _ string, _ int, _ []string) error { return nil }
func (s *stubStore) Delete(_ context.Context, _ string, _ int) error             { return nil }
func (s *stubStore) UploadFile(_ context.Context, _ sheetdb.UploadRequest) (string, error) {
	return "", nil
}

func testEngine(store *stubStore) http.Handler {
	sheets := config.SheetsConfig{
		Inventory: "Inventory",
		History:   "History",
		Login:     "Login Master",
		Dropdown:  "Master Drop Down",
	}

	inventorySvc := inventorysvc.NewService(store, sheets, "", nil)
	authSvc := authsvc.NewService(store, authsvc.NewMemorySessionStore(), sheets.Login, nil)
	accountsSvc := accountssvc.NewService(store, sheets.Login, nil)
	reportingSvc := reportingsvc.NewService(inventorySvc, 10, nil)

	return New(Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, nil),
		Dashboard: handlers.NewDashboardHandler(reportingSvc, nil),
		Inventory: handlers.NewInventoryHandler(inventorySvc, nil),
		History:   handlers.NewHistoryHandler(inventorySvc, nil),
		Accounts:  handlers.NewAccountsHandler(accountsSvc, nil),
	}, authSvc, nil)
}

func testStore() *stubStore {
	return &stubStore{sheets: map[string][][]any{
		"Login Master": {
			{"Serial No", "User Name", "ID", "Pass", "Role", "Page Access"},
			{"SN-001", "Administrator", "admin", "right", "Admin", ""},
			{"SN-002", "Clerk", "clerk", "pw", "User", `"Inventory"`},
		},
		"Inventory": {
			{"header"},
			{"01/02/2024", "SN-001", "", "Widget", "", "", "", "", "", "10", "", "0", "0", "0", "3", "30", "", "", "", ""},
		},
		"History": {{"header"}},
	}}
}

func doJSON(t *testing.T, engine http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func loginAs(t *testing.T, engine http.Handler, username, password string) string {
	t.Helper()

	resp := doJSON(t, engine, http.MethodPost, "/api/login", "", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	engine := testEngine(testStore())

	token := loginAs(t, engine, "admin", "right")

	resp := doJSON(t, engine, http.MethodGet, "/api/session/screen", token, "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestLoginFailureIsGenericForAnyCause(t *testing.T) {
	badCreds := doJSON(t, testEngine(testStore()), http.MethodPost, "/api/login", "", `{"username":"admin","password":"wrong"}`)

	broken := testStore()
	broken.fetchErr = fmt.Errorf("%w: backend down", sheetdb.ErrTransport)
	unreachable := doJSON(t, testEngine(broken), http.MethodPost, "/api/login", "", `{"username":"admin","password":"right"}`)

	assert.Equal(t, http.StatusUnauthorized, badCreds.Code)
	assert.Equal(t, http.StatusUnauthorized, unreachable.Code)
	// The caller cannot tell a bad password from an unreachable backend.
	assert.JSONEq(t, badCreds.Body.String(), unreachable.Body.String())
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	engine := testEngine(testStore())

	resp := doJSON(t, engine, http.MethodGet, "/api/inventory", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestPageAccessGatesScreens(t *testing.T) {
	engine := testEngine(testStore())
	token := loginAs(t, engine, "clerk", "pw")

	allowed := doJSON(t, engine, http.MethodGet, "/api/inventory", token, "")
	assert.Equal(t, http.StatusOK, allowed.Code)

	denied := doJSON(t, engine, http.MethodGet, "/api/accounts", token, "")
	assert.Equal(t, http.StatusForbidden, denied.Code)
}

func TestScreenSelectionFallsBackToPermitted(t *testing.T) {
	engine := testEngine(testStore())
	token := loginAs(t, engine, "clerk", "pw")

	resp := doJSON(t, engine, http.MethodPut, "/api/session/screen", token, `{"screen":"settings"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		ActiveScreen string `json:"activeScreen"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "inventory", body.ActiveScreen)
}

func TestOutMovementGuardRejectedAtBoundary(t *testing.T) {
	engine := testEngine(testStore())
	token := loginAs(t, engine, "admin", "right")

	resp := doJSON(t, engine, http.MethodPost, "/api/inventory/movements", token,
		`{"serialNumber":"SN-001","status":"OUT","vendorName":"Acme","qty":99}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "exceed available stock")
}

func TestLogoutInvalidatesToken(t *testing.T) {
	engine := testEngine(testStore())
	token := loginAs(t, engine, "admin", "right")

	resp := doJSON(t, engine, http.MethodPost, "/api/logout", token, "")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(t, engine, http.MethodGet, "/api/inventory", token, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHealthz(t *testing.T) {
	engine := testEngine(testStore())

	resp := doJSON(t, engine, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}
