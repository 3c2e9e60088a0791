package secrets

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
)

// lightweight per-user sealing with AES-GCM. Not a replacement for OS keychains
// but keeps stored passwords out of plain text.

var ErrCiphertextTooShort = errors.New("secrets: ciphertext too short")

// KV is the key/value surface a SealedStore wraps.
type KV interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// SealedStore encrypts values before they reach the inner store.
type SealedStore struct {
	inner KV
	gcm   cipher.AEAD
}

// NewSealedStore wraps inner with AES-GCM. key must be 16, 24 or 32 bytes.
func NewSealedStore(inner KV, key []byte) (*SealedStore, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("secrets: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("secrets: %w", err)
	}
	return &SealedStore{inner: inner, gcm: gcm}, nil
}

func (s *SealedStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	enc, ok, err := s.inner.GetItem(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", false, fmt.Errorf("secrets: decode %q: %w", key, err)
	}
	pt, err := s.open(raw, key)
	if err != nil {
		return "", false, fmt.Errorf("secrets: open %q: %w", key, err)
	}
	return string(pt), true, nil
}

func (s *SealedStore) SetItem(ctx context.Context, key, value string) error {
	ct, err := s.seal([]byte(value), key)
	if err != nil {
		return err
	}
	return s.inner.SetItem(ctx, key, base64.StdEncoding.EncodeToString(ct))
}

func (s *SealedStore) RemoveItem(ctx context.Context, key string) error {
	return s.inner.RemoveItem(ctx, key)
}

// the storage key is bound as additional data so values cannot be swapped between keys
func (s *SealedStore) seal(plain []byte, key string) ([]byte, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.gcm.Seal(nonce, nonce, plain, []byte(key)), nil
}

func (s *SealedStore) open(ciphertext []byte, key string) ([]byte, error) {
	if len(ciphertext) < s.gcm.NonceSize() {
		return nil, ErrCiphertextTooShort
	}
	nonce := ciphertext[:s.gcm.NonceSize()]
	body := ciphertext[s.gcm.NonceSize():]
	return s.gcm.Open(nil, nonce, body, []byte(key))
}

// MasterKey derives the per-user sealing key.
func MasterKey() []byte {
	user := os.Getenv("USER")
	base := fmt.Sprintf("savepass-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}
