package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanvs/stockbook/internal/domain/models"
	"github.com/karanvs/stockbook/internal/repository/sheetdb"
)

type stubStore struct {
	rows [][]any

	inserts [][]string
	updates map[int][]string
	deletes []int
}

func (s *stubStore) FetchSheet(_ context.Context, _ string, _ ...sheetdb.FetchOption) ([][]any, error) {
	return s.rows, nil
}

func (s *stubStore) Insert(_ context.Context, _ string, row []string) error {
	s.inserts = append(s.inserts, row)
	return nil
}

func (s *stubStore) Update(_ context.Context, _ string, rowIndex int, row []string) error {
	if s.updates == nil {
		s.updates = make(map[int][]string)
	}
	s.updates[rowIndex] = row
	return nil
}

func (s *stubStore) Delete(_ context.Context, _ string, rowIndex int) error {
	s.deletes = append(s.deletes, rowIndex)
	return nil
}

func (s *stubStore) UploadFile(_ context.Context, _ sheetdb.UploadRequest) (string, error) {
	return "", nil
}

func accountRows() [][]any {
	return [][]any{
		{"Serial No", "User Name", "ID", "Pass", "Role", "Page Access"},
		{"SN-001", "Administrator", "admin", "secret", "Admin", ""},
		{"SN-002", "Clerk", "clerk", "pw", "User", `"Inventory"`},
	}
}

func TestCreateContinuesSerialSequence(t *testing.T) {
	store := &stubStore{rows: accountRows()}
	svc := NewService(store, "Login Master", nil)

	created, err := svc.Create(context.Background(), models.Account{
		DisplayName: "Viewer",
		LoginID:     "viewer",
		Password:    "pw",
		PageAccess:  []string{"Dashboard"},
	})
	require.NoError(t, err)

	assert.Equal(t, "SN-003", created.SerialNo)
	assert.Equal(t, "User", created.Role)
	require.Len(t, store.inserts, 1)
	assert.Equal(t, "SN-003", store.inserts[0][0])
	assert.Equal(t, `"Dashboard"`, store.inserts[0][5])
}

func TestCreateFirstAccount(t *testing.T) {
	store := &stubStore{rows: [][]any{{"Serial No", "User Name", "ID", "Pass", "Role", "Page Access"}}}
	svc := NewService(store, "Login Master", nil)

	created, err := svc.Create(context.Background(), models.Account{LoginID: "admin", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "SN-001", created.SerialNo)
}

func TestCreateRequiresCredentials(t *testing.T) {
	svc := NewService(&stubStore{rows: accountRows()}, "Login Master", nil)

	_, err := svc.Create(context.Background(), models.Account{LoginID: "", Password: "pw"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(context.Background(), models.Account{LoginID: "x", Password: ""})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestUpdateWritesRow(t *testing.T) {
	store := &stubStore{rows: accountRows()}
	svc := NewService(store, "Login Master", nil)

	err := svc.Update(context.Background(), 3, models.Account{
		SerialNo: "SN-002",
		LoginID:  "clerk",
		Password: "rotated",
		Role:     "User",
	})
	require.NoError(t, err)

	require.Contains(t, store.updates, 3)
	assert.Equal(t, "rotated", store.updates[3][3])
}

func TestDeleteGuardsMasterAdmin(t *testing.T) {
	store := &stubStore{rows: accountRows()}
	svc := NewService(store, "Login Master", nil)

	err := svc.Delete(context.Background(), models.MasterAdminRowIndex)
	assert.ErrorIs(t, err, ErrMasterAdmin)
	assert.Empty(t, store.deletes)

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Equal(t, []int{3}, store.deletes)
}
