package services_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vendorisk/assessment-server/config"
	"github.com/vendorisk/assessment-server/services"
	"github.com/vendorisk/assessment-server/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := config.Config{SQLitePath: filepath.Join(t.TempDir(), "test.db")}
	db, err := config.OpenDatabase(cfg)
	require.NoError(t, err)
	return store.New(db)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	se, ok := services.AsServiceError(err)
	require.True(t, ok, "expected a ServiceError, got %v", err)
	require.Equal(t, code, se.Code)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	identity := services.NewIdentityService(newTestStore(t))

	user, err := identity.Register("alice", "pw1")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "pw1", user.PasswordHash, "raw password must never be stored")

	got, err := identity.Authenticate("alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	identity := services.NewIdentityService(newTestStore(t))

	_, err := identity.Register("alice", "pw1")
	require.NoError(t, err)

	_, err = identity.Register("alice", "other")
	requireCode(t, err, services.CodeConflict)

	// The first registration still works.
	_, err = identity.Authenticate("alice", "pw1")
	require.NoError(t, err)
}

func TestRegisterBlankFields(t *testing.T) {
	identity := services.NewIdentityService(newTestStore(t))

	_, err := identity.Register("", "pw")
	requireCode(t, err, services.CodeValidation)
	_, err = identity.Register("bob", "")
	requireCode(t, err, services.CodeValidation)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	identity := services.NewIdentityService(newTestStore(t))

	_, err := identity.Register("alice", "pw1")
	require.NoError(t, err)

	_, wrongPassword := identity.Authenticate("alice", "wrong")
	requireCode(t, wrongPassword, services.CodeAuth)
	_, unknownUser := identity.Authenticate("nobody", "pw1")
	requireCode(t, unknownUser, services.CodeAuth)

	// Same user-facing message for both failure modes.
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}
