package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"
)

const sessionKeyPrefix = "admin_session:"

// CachedSession is the session token record kept in Redis in front of the database
type CachedSession struct {
	AdminID   string    `json:"adminId"`
	RoleID    int       `json:"roleId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionCache stores encrypted session records keyed by a hash of the token
type SessionCache struct {
	encryptionKey []byte
}

var (
	setSessionValue    = Set
	getSessionValue    = Get
	delSessionValue    = Del
	marshalSessionJSON = json.Marshal
)

// NewSessionCache creates a session cache from a 32 byte hex key
func NewSessionCache(encryptionKeyHex string) (*SessionCache, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &SessionCache{encryptionKey: key}, nil
}

// Put caches a session until its expiry
func (s *SessionCache) Put(ctx context.Context, token string, data *CachedSession) error {
	ttl := time.Until(data.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	raw, err := marshalSessionJSON(data)
	if err != nil {
		return err
	}

	encrypted, err := s.encrypt(raw)
	if err != nil {
		return err
	}

	return setSessionValue(ctx, sessionKey(token), encrypted, ttl)
}

// Get returns the cached session. Misses surface as errors satisfying IsMiss.
func (s *SessionCache) Get(ctx context.Context, token string) (*CachedSession, error) {
	encrypted, err := getSessionValue(ctx, sessionKey(token))
	if err != nil {
		return nil, err
	}

	decrypted, err := s.decrypt(encrypted)
	if err != nil {
		return nil, err
	}

	var data CachedSession
	if err := json.Unmarshal(decrypted, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Delete removes a cached session
func (s *SessionCache) Delete(ctx context.Context, token string) error {
	return delSessionValue(ctx, sessionKey(token))
}

func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return sessionKeyPrefix + hex.EncodeToString(sum[:])
}

func (s *SessionCache) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	return hex.EncodeToString(gcm.Seal(nonce, nonce, plaintext, nil)), nil
}

func (s *SessionCache) decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptionKey)
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
