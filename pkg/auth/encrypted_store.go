package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 32
	keySize    = 32
	iterations = 100000
)

// EncryptedFileStore implements CredentialStore using an encrypted file.
// Credentials are serialized to JSON and sealed with AES-GCM under a key
// derived from a passphrase via PBKDF2.
type EncryptedFileStore struct {
	filepath   string
	passphrase string
	mu         sync.RWMutex
}

// encryptedFile is the on-disk structure
type encryptedFile struct {
	Salt      string `json:"salt"`
	Encrypted string `json:"encrypted"`
}

// NewEncryptedFileStore creates a new encrypted file-based credential store
func NewEncryptedFileStore(filePath string) (*EncryptedFileStore, error) {
	dir := filepath.Dir(filePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	store := &EncryptedFileStore{
		filepath: filePath,
	}

	passphrase, err := store.getPassphrase()
	if err != nil {
		return nil, fmt.Errorf("failed to get passphrase: %w", err)
	}
	store.passphrase = passphrase

	return store, nil
}

// getPassphrase derives a passphrase for the encrypted file. An explicit
// passphrase from the environment wins; otherwise a machine-local one is
// derived so the file is at least not readable when copied elsewhere.
func (e *EncryptedFileStore) getPassphrase() (string, error) {
	if p := os.Getenv("XPLORE_VAULT_PASSPHRASE"); p != "" {
		return p, nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "unknown"
	}

	seed := fmt.Sprintf("xplore:%s:%s", hostname, home)
	sum := sha256.Sum256([]byte(seed))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Store saves a credential to the encrypted file
func (e *EncryptedFileStore) Store(cred *Credential) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cred == nil || cred.Label == "" {
		return ErrInvalidCredentials
	}

	creds, err := e.loadAll()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load existing credentials: %w", err)
	}
	if creds == nil {
		creds = make(map[string]Credential)
	}

	creds[cred.Label] = *cred
	return e.saveAll(creds)
}

// Retrieve gets a credential from the encrypted file
func (e *EncryptedFileStore) Retrieve(label string) (*Credential, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if label == "" {
		return nil, ErrInvalidCredentials
	}

	creds, err := e.loadAll()
	if err != nil {
		return nil, ErrCredentialsNotFound
	}

	cred, ok := creds[label]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	return &cred, nil
}

// List returns all credentials from the encrypted file
func (e *EncryptedFileStore) List() ([]*Credential, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	creds, err := e.loadAll()
	if err != nil {
		return []*Credential{}, nil
	}

	var result []*Credential
	for label := range creds {
		cred := creds[label]
		result = append(result, &cred)
	}
	return result, nil
}

// Delete removes a credential from the encrypted file
func (e *EncryptedFileStore) Delete(label string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	creds, err := e.loadAll()
	if err != nil {
		return ErrCredentialsNotFound
	}

	if _, ok := creds[label]; !ok {
		return ErrCredentialsNotFound
	}

	delete(creds, label)
	return e.saveAll(creds)
}

// Exists checks if a credential exists in the encrypted file
func (e *EncryptedFileStore) Exists(label string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	creds, err := e.loadAll()
	if err != nil {
		return false
	}
	_, ok := creds[label]
	return ok
}

// loadAll reads and decrypts the credential file
func (e *EncryptedFileStore) loadAll() (map[string]Credential, error) {
	raw, err := os.ReadFile(e.filepath)
	if err != nil {
		return nil, err
	}

	var file encryptedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse credential file: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(file.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(file.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	plaintext, err := decrypt(ciphertext, e.passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var creds map[string]Credential
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return creds, nil
}

// saveAll encrypts and writes the credential file
func (e *EncryptedFileStore) saveAll(creds map[string]Credential) error {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	ciphertext, err := encrypt(plaintext, e.passphrase, salt)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	file := encryptedFile{
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Encrypted: base64.StdEncoding.EncodeToString(ciphertext),
	}

	data, err := json.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to marshal credential file: %w", err)
	}

	return os.WriteFile(e.filepath, data, 0600)
}

// encrypt seals plaintext with AES-GCM under a PBKDF2-derived key
func encrypt(plaintext []byte, passphrase string, salt []byte) ([]byte, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt opens an AES-GCM sealed message
func decrypt(ciphertext []byte, passphrase string, salt []byte) ([]byte, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, sealed, nil)
}
