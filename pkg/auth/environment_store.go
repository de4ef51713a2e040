package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements CredentialStore using environment variables.
// This is read-only and mainly for CI/scripted use.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(cred *Credential) error {
	return ErrStoreUnavailable
}

// Retrieve gets the bearer token from the environment
func (e *EnvironmentStore) Retrieve(label string) (*Credential, error) {
	token := os.Getenv("XPLORE_BEARER_TOKEN")
	if token == "" {
		return nil, ErrCredentialsNotFound
	}

	// The environment holds a single unlabeled token
	if label == "" {
		label = "default"
	}

	return &Credential{
		Label:        label,
		BearerToken:  token,
		LastModified: time.Now(),
	}, nil
}

// List returns a single credential if the environment variable is set
func (e *EnvironmentStore) List() ([]*Credential, error) {
	cred, err := e.Retrieve("")
	if err != nil {
		return []*Credential{}, nil
	}
	return []*Credential{cred}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(label string) error {
	return ErrStoreUnavailable
}

// Exists checks if the environment credential is set
func (e *EnvironmentStore) Exists(label string) bool {
	return os.Getenv("XPLORE_BEARER_TOKEN") != ""
}
