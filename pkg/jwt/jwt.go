package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// AdminClaims are embedded in an admin session token
type AdminClaims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	Access   string `json:"access"`
	jwt.RegisteredClaims
}

// NonceClaims bind a sign-in nonce to a wallet address
type NonceClaims struct {
	Nonce   int64  `json:"nonce"`
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// JWTService signs with the current secret and accepts any of the previous
// secrets during verification so keys can be rotated without logging everyone out.
type JWTService struct {
	secret      []byte
	previous    [][]byte
	expiry      time.Duration
	nonceExpiry time.Duration
}

var (
	signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
		return token.SignedString(secret)
	}
	timeNow = time.Now
)

// NewJWTService creates a new JWT service
func NewJWTService(secret string, previousSecrets []string, expiry, nonceExpiry time.Duration) *JWTService {
	prev := make([][]byte, 0, len(previousSecrets))
	for _, s := range previousSecrets {
		if s == "" || s == secret {
			continue
		}
		prev = append(prev, []byte(s))
	}
	return &JWTService{
		secret:      []byte(secret),
		previous:    prev,
		expiry:      expiry,
		nonceExpiry: nonceExpiry,
	}
}

// Expiry returns the admin token lifetime
func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}

// GenerateAdminToken signs an admin session token and returns it with its expiry time
func (s *JWTService) GenerateAdminToken(userID, username, access string) (string, time.Time, error) {
	now := timeNow()
	expiresAt := now.Add(s.expiry)
	claims := &AdminClaims{
		Username: username,
		UserID:   userID,
		Access:   access,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := signJWTToken(jwt.NewWithClaims(jwt.SigningMethodHS256, claims), s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateAdminToken validates an admin session token and returns its claims
func (s *JWTService) ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateNonceToken signs a short lived challenge token for wallet sign-in
func (s *JWTService) GenerateNonceToken(nonce int64, address string) (string, error) {
	now := timeNow()
	claims := &NonceClaims{
		Nonce:   nonce,
		Address: address,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.nonceExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return signJWTToken(jwt.NewWithClaims(jwt.SigningMethodHS256, claims), s.secret)
}

// ValidateNonceToken validates a challenge token
func (s *JWTService) ValidateNonceToken(tokenString string) (*NonceClaims, error) {
	claims := &NonceClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *JWTService) parse(tokenString string, claims jwt.Claims) error {
	keys := append([][]byte{s.secret}, s.previous...)

	for _, key := range keys {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return key, nil
		}, jwt.WithTimeFunc(timeNow))

		if err == nil {
			if !token.Valid {
				return ErrInvalidToken
			}
			return nil
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			break
		}
	}
	return ErrInvalidToken
}
