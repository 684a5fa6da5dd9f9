package accounts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	"github.com/sneakhead/sneakhead-backend/pkg/config"
	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
	"github.com/sneakhead/sneakhead-backend/pkg/security"
)

func newTestService(t *testing.T, hash bool) (Service, *docstore.Store) {
	t.Helper()

	store, err := docstore.New(t.TempDir())
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Store:         store,
		Locks:         lockmanager.New(),
		HashPasswords: hash,
		Password:      config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16},
	})
	require.NoError(t, err)
	return svc, store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "secret"))
	require.NoError(t, svc.Authenticate(ctx, "alice", "secret"))

	err := svc.Authenticate(ctx, "alice", "wrong")
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	err = svc.Authenticate(ctx, "nobody", "secret")
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestRegisterDuplicateUsernameLeavesFirstRecord(t *testing.T) {
	svc, store := newTestService(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "first"))
	err := svc.Register(ctx, "alice", "second")
	require.True(t, errors.Is(err, ErrUserExists))

	users := Collection{}
	require.NoError(t, store.Load(docstore.CollectionUsers, &users))
	require.True(t, users["alice"].Password.Matches("first"), "original record must be unchanged")
}

func TestUsernameIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "secret"))
	require.NoError(t, svc.Register(ctx, "Alice", "other"))

	err := svc.Authenticate(ctx, "ALICE", "secret")
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	err := svc.Register(ctx, "  ", "secret")
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	err = svc.Register(ctx, "alice", "")
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestIsAdminUser(t *testing.T) {
	svc, store := newTestService(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	isAdmin, err := svc.IsAdminUser(ctx, "alice")
	require.NoError(t, err)
	require.False(t, isAdmin, "registration never grants admin")

	isAdmin, err = svc.IsAdminUser(ctx, "nobody")
	require.NoError(t, err)
	require.False(t, isAdmin)

	users := Collection{}
	require.NoError(t, store.Load(docstore.CollectionUsers, &users))
	admin := users["alice"]
	admin.IsAdmin = true
	users["alice"] = admin
	require.NoError(t, store.Save(docstore.CollectionUsers, users))

	isAdmin, err = svc.IsAdminUser(ctx, "alice")
	require.NoError(t, err)
	require.True(t, isAdmin)
}

func TestHashedRegistrationStoresOpaqueCredential(t *testing.T) {
	svc, store := newTestService(t, true)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	users := Collection{}
	require.NoError(t, store.Load(docstore.CollectionUsers, &users))
	stored := string(users["alice"].Password)
	require.True(t, strings.HasPrefix(stored, security.HashPrefix), "expected encoded credential, got %q", stored)

	require.NoError(t, svc.Authenticate(ctx, "alice", "secret"))
	require.True(t, errors.Is(svc.Authenticate(ctx, "alice", "wrong"), ErrInvalidCredentials))
}

func TestPlainCredentialStillVerifies(t *testing.T) {
	// records carried over from the legacy data files hold plain values
	svc, store := newTestService(t, true)
	ctx := context.Background()

	users := Collection{"bob": {Username: "bob", Password: Credential("plain")}}
	require.NoError(t, store.Save(docstore.CollectionUsers, users))

	require.NoError(t, svc.Authenticate(ctx, "bob", "plain"))
}
