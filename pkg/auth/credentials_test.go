package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

func TestManagerStoreAndRetrieve(t *testing.T) {
	store := NewMockStore()
	m := newTestManager(store, NewEnvironmentStore())

	err := m.Store(&Credential{Label: "research", BearerToken: "AAAA-token"})
	require.NoError(t, err)

	cred, err := m.Retrieve("research")
	require.NoError(t, err)
	assert.Equal(t, "AAAA-token", cred.BearerToken)
	assert.False(t, cred.LastModified.IsZero())
}

func TestManagerStoreValidation(t *testing.T) {
	m := newTestManager(NewMockStore())

	assert.Error(t, m.Store(&Credential{BearerToken: "x"}))
	assert.Error(t, m.Store(&Credential{Label: "x"}))
}

func TestManagerFallbackToSecondStore(t *testing.T) {
	failing := NewMockStore()
	failing.StoreErr = ErrStoreUnavailable
	working := NewMockStore()
	m := newTestManager(failing, working)

	err := m.Store(&Credential{Label: "acct", BearerToken: "tok"})
	require.NoError(t, err)

	assert.False(t, failing.Exists("acct"))
	assert.True(t, working.Exists("acct"))
}

func TestManagerListMostRecentWins(t *testing.T) {
	older := NewMockStore()
	newer := NewMockStore()

	older.creds["acct"] = &Credential{
		Label: "acct", BearerToken: "old", LastModified: time.Now().Add(-time.Hour),
	}
	newer.creds["acct"] = &Credential{
		Label: "acct", BearerToken: "new", LastModified: time.Now(),
	}

	m := newTestManager(older, newer)
	creds, err := m.List()
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, "new", creds[0].BearerToken)
}

func TestManagerRetrieveDefaultFromEnv(t *testing.T) {
	t.Setenv("XPLORE_BEARER_TOKEN", "env-token")

	m := newTestManager(NewMockStore(), NewEnvironmentStore())
	cred, err := m.RetrieveDefault()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cred.BearerToken)
}

func TestEnvironmentStoreReadOnly(t *testing.T) {
	store := NewEnvironmentStore()
	assert.ErrorIs(t, store.Store(&Credential{Label: "x", BearerToken: "y"}), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Delete("x"), ErrStoreUnavailable)
}

func TestEncryptedFileStoreRoundTrip(t *testing.T) {
	t.Setenv("XPLORE_VAULT_PASSPHRASE", "test-passphrase")

	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	cred := &Credential{Label: "main", BearerToken: "secret-bearer", LastModified: time.Now()}
	require.NoError(t, store.Store(cred))

	got, err := store.Retrieve("main")
	require.NoError(t, err)
	assert.Equal(t, "secret-bearer", got.BearerToken)

	assert.True(t, store.Exists("main"))
	require.NoError(t, store.Delete("main"))
	assert.False(t, store.Exists("main"))
}

func TestEncryptedFileStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")

	t.Setenv("XPLORE_VAULT_PASSPHRASE", "first")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Store(&Credential{Label: "main", BearerToken: "tok"}))

	t.Setenv("XPLORE_VAULT_PASSPHRASE", "second")
	other, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	_, err = other.Retrieve("main")
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	cred := &Credential{Label: "acct", BearerToken: "AAAAAAAAAAAAsecretXXXX"}
	masked := Sanitize(cred)

	assert.Equal(t, "acct", masked.Label)
	assert.Equal(t, "AAAA...XXXX", masked.BearerToken)
	assert.NotEqual(t, cred.BearerToken, masked.BearerToken)

	short := Sanitize(&Credential{Label: "s", BearerToken: "tiny"})
	assert.Equal(t, "********", short.BearerToken)

	assert.Nil(t, Sanitize(nil))
}
