package store

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 32
	keySize    = 32
	iterations = 100000

	keyringService = "instagrowth"
	keyringUser    = "obfuscation"
)

// envelope wraps an obfuscated payload on disk. A record that fails to
// parse as an envelope is treated as plain JSON, which keeps reads working
// across obfuscation being toggled or the key being rotated.
type envelope struct {
	Salt    string `json:"salt"`
	Payload string `json:"payload"`
	Version int    `json:"version"`
}

// obfuscator reversibly scrambles records before they hit disk. This is
// obfuscation, not security: the passphrase lives on the same machine.
type obfuscator struct {
	passphrase string
}

// newObfuscator loads or creates the passphrase, preferring the system
// keyring and falling back to a file in the data directory.
func newObfuscator(dataDir string) (*obfuscator, error) {
	pass, err := loadPassphrase(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get passphrase: %w", err)
	}
	return &obfuscator{passphrase: pass}, nil
}

func loadPassphrase(dataDir string) (string, error) {
	if pass := os.Getenv("INSTAGROWTH_PASSPHRASE"); pass != "" {
		return pass, nil
	}

	if pass, err := keyring.Get(keyringService, keyringUser); err == nil && pass != "" {
		return pass, nil
	}

	passphraseFile := filepath.Join(dataDir, ".passphrase")
	if content, err := os.ReadFile(passphraseFile); err == nil && len(content) > 0 {
		return string(content), nil
	}

	pass := generatePassphrase()

	// Best effort: keyring first, file as fallback so the passphrase
	// survives on systems without a secret service.
	if err := keyring.Set(keyringService, keyringUser, pass); err != nil {
		if err := os.WriteFile(passphraseFile, []byte(pass), 0600); err != nil {
			return "", fmt.Errorf("failed to save passphrase: %w", err)
		}
	}

	return pass, nil
}

func generatePassphrase() string {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "instagrowth_default_key"
	}
	return base64.URLEncoding.EncodeToString(b)
}

// seal obfuscates plaintext and returns the serialized envelope.
func (o *obfuscator) seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(o.passphrase), salt, iterations, keySize, sha256.New)

	encrypted, err := encrypt(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	return json.Marshal(envelope{
		Salt:    base64.StdEncoding.EncodeToString(salt),
		Payload: base64.StdEncoding.EncodeToString(encrypted),
		Version: 1,
	})
}

// open reverses seal. It returns an error for anything that is not a valid
// envelope sealed with the current passphrase; callers fall back to plain
// decoding on error.
func (o *obfuscator) open(data []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("not an envelope: %w", err)
	}
	if env.Salt == "" || env.Payload == "" {
		return nil, errors.New("not an envelope: missing fields")
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	encrypted, err := base64.StdEncoding.DecodeString(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	key := pbkdf2.Key([]byte(o.passphrase), salt, iterations, keySize, sha256.New)
	return decrypt(encrypted, key)
}

// encrypt encrypts data using AES-GCM
func encrypt(plaintext []byte, key []byte) ([]byte, error) {
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

// decrypt decrypts data using AES-GCM
func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
