package auth

import "sync"

// MockStore is an in-memory CredentialStore for tests
type MockStore struct {
	mu    sync.RWMutex
	creds map[string]*Credential

	// Optional error injection
	StoreErr    error
	RetrieveErr error
}

// NewMockStore creates a new in-memory credential store
func NewMockStore() *MockStore {
	return &MockStore{creds: make(map[string]*Credential)}
}

func (m *MockStore) Store(cred *Credential) error {
	if m.StoreErr != nil {
		return m.StoreErr
	}
	if cred == nil || cred.Label == "" {
		return ErrInvalidCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *cred
	m.creds[cred.Label] = &copied
	return nil
}

func (m *MockStore) Retrieve(label string) (*Credential, error) {
	if m.RetrieveErr != nil {
		return nil, m.RetrieveErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	cred, ok := m.creds[label]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	copied := *cred
	return &copied, nil
}

func (m *MockStore) List() ([]*Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Credential
	for _, cred := range m.creds {
		copied := *cred
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockStore) Delete(label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.creds[label]; !ok {
		return ErrCredentialsNotFound
	}
	delete(m.creds, label)
	return nil
}

func (m *MockStore) Exists(label string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.creds[label]
	return ok
}
