package auth

import (
	"encoding/json"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "xplore"
	keyringPrefix  = "bearer_"
)

// KeyringStore implements CredentialStore using the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a new keyring-based credential store
func NewKeyringStore() (*KeyringStore, error) {
	// Test if keyring is available
	testKey := "test_availability"
	err := keyring.Set(keyringService, testKey, "test")
	if err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringStore{}, nil
}

// Store saves a credential to the system keychain
func (k *KeyringStore) Store(cred *Credential) error {
	if cred == nil || cred.Label == "" {
		return ErrInvalidCredentials
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	key := keyringPrefix + cred.Label
	if err := keyring.Set(keyringService, key, string(data)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}

	// Maintain an index of labels, since keyring has no list operation
	return k.addToIndex(cred.Label)
}

// Retrieve gets a credential from the system keychain
func (k *KeyringStore) Retrieve(label string) (*Credential, error) {
	if label == "" {
		return nil, ErrInvalidCredentials
	}

	key := keyringPrefix + label
	data, err := keyring.Get(keyringService, key)
	if err != nil {
		return nil, ErrCredentialsNotFound
	}

	var cred Credential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return &cred, nil
}

// List returns all credentials recorded in the keyring index
func (k *KeyringStore) List() ([]*Credential, error) {
	labels, err := k.readIndex()
	if err != nil {
		return []*Credential{}, nil
	}

	var creds []*Credential
	for _, label := range labels {
		if cred, err := k.Retrieve(label); err == nil {
			creds = append(creds, cred)
		}
	}
	return creds, nil
}

// Delete removes a credential from the system keychain
func (k *KeyringStore) Delete(label string) error {
	if label == "" {
		return ErrInvalidCredentials
	}

	key := keyringPrefix + label
	if err := keyring.Delete(keyringService, key); err != nil {
		return ErrCredentialsNotFound
	}

	return k.removeFromIndex(label)
}

// Exists checks if a credential exists in the keychain
func (k *KeyringStore) Exists(label string) bool {
	_, err := k.Retrieve(label)
	return err == nil
}

const indexKey = "label_index"

func (k *KeyringStore) readIndex() ([]string, error) {
	data, err := keyring.Get(keyringService, indexKey)
	if err != nil {
		return nil, err
	}

	var labels []string
	if err := json.Unmarshal([]byte(data), &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (k *KeyringStore) writeIndex(labels []string) error {
	data, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	return keyring.Set(keyringService, indexKey, string(data))
}

func (k *KeyringStore) addToIndex(label string) error {
	labels, _ := k.readIndex()
	for _, l := range labels {
		if l == label {
			return nil
		}
	}
	return k.writeIndex(append(labels, label))
}

func (k *KeyringStore) removeFromIndex(label string) error {
	labels, err := k.readIndex()
	if err != nil {
		return nil
	}

	out := labels[:0]
	for _, l := range labels {
		if l != label {
			out = append(out, l)
		}
	}
	return k.writeIndex(out)
}
