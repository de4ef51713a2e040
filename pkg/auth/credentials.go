package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Credential represents a stored X API bearer token
type Credential struct {
	Label        string    `json:"label"`
	BearerToken  string    `json:"bearer_token"`
	LastModified time.Time `json:"last_modified"`
}

// CredentialStore is the interface for storing and retrieving credentials
type CredentialStore interface {
	// Store saves a credential under its label
	Store(cred *Credential) error

	// Retrieve gets the credential for a specific label
	Retrieve(label string) (*Credential, error)

	// List returns all stored credentials
	List() ([]*Credential, error)

	// Delete removes the credential for a specific label
	Delete(label string) error

	// Exists checks if a credential exists for a label
	Exists(label string) bool
}

// Manager handles credential storage with fallback mechanisms
type Manager struct {
	stores []CredentialStore
}

// NewManager creates a new credential manager with appropriate storage backends
func NewManager() (*Manager, error) {
	var stores []CredentialStore

	// Try keyring first (system keychain)
	keyringStore, err := NewKeyringStore()
	if err == nil {
		stores = append(stores, keyringStore)
	}

	// Always add encrypted file store as fallback
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "credentials.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	// Add environment store as last resort
	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// Store saves a credential using the first available store
func (m *Manager) Store(cred *Credential) error {
	if cred.Label == "" {
		return errors.New("credential label is required")
	}
	if cred.BearerToken == "" {
		return errors.New("bearer token is required")
	}

	cred.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(cred); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store credential: %w", lastErr)
	}
	return errors.New("no available credential stores")
}

// Retrieve gets a credential from the first store that has it
func (m *Manager) Retrieve(label string) (*Credential, error) {
	for _, store := range m.stores {
		if cred, err := store.Retrieve(label); err == nil && cred != nil {
			return cred, nil
		}
	}
	return nil, fmt.Errorf("credential not found: %s", label)
}

// RetrieveDefault gets the default credential or the first available one
func (m *Manager) RetrieveDefault() (*Credential, error) {
	// First try the environment (for scripted use)
	if envStore, ok := m.stores[len(m.stores)-1].(*EnvironmentStore); ok {
		if cred, err := envStore.Retrieve(""); err == nil && cred != nil {
			return cred, nil
		}
	}

	creds, err := m.List()
	if err == nil && len(creds) > 0 {
		return creds[0], nil
	}

	return nil, errors.New("no credentials found")
}

// List returns all stored credentials from all stores
func (m *Manager) List() ([]*Credential, error) {
	credMap := make(map[string]*Credential)

	for _, store := range m.stores {
		creds, err := store.List()
		if err != nil {
			continue
		}
		for _, cred := range creds {
			// Use the most recently modified version
			if existing, ok := credMap[cred.Label]; !ok || cred.LastModified.After(existing.LastModified) {
				credMap[cred.Label] = cred
			}
		}
	}

	var result []*Credential
	for _, cred := range credMap {
		result = append(result, cred)
	}

	return result, nil
}

// Delete removes a credential from all stores
func (m *Manager) Delete(label string) error {
	var deleted bool
	var lastErr error

	for _, store := range m.stores {
		if err := store.Delete(label); err == nil {
			deleted = true
		} else {
			lastErr = err
		}
	}

	if !deleted && lastErr != nil {
		return fmt.Errorf("failed to delete credential: %w", lastErr)
	}
	if !deleted {
		return fmt.Errorf("credential not found: %s", label)
	}

	return nil
}

// Exists reports whether any store holds a credential for label
func (m *Manager) Exists(label string) bool {
	for _, store := range m.stores {
		if store.Exists(label) {
			return true
		}
	}
	return false
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "xplore")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "xplore")
	default: // Linux and others
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "xplore")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "xplore")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// Sanitize creates a copy of the credential with the token masked
func Sanitize(cred *Credential) *Credential {
	if cred == nil {
		return nil
	}

	return &Credential{
		Label:        cred.Label,
		BearerToken:  maskString(cred.BearerToken),
		LastModified: cred.LastModified,
	}
}

// maskString masks all but the first 4 and last 4 characters of a string
func maskString(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// Errors
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)
