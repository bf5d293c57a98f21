package session

import (
	"crypto/rsa"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionClaim = "sid"

var ErrInvalidToken = errors.New("invalid session token")

// Signer issues and verifies the signed session cookie value.
type Signer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	now        func() time.Time
}

func NewSigner(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) *Signer {
	return &Signer{privateKey: privateKey, publicKey: publicKey, now: time.Now}
}

// LoadSigner reads the RSA key pair from PEM files.
func LoadSigner(privateKeyPath, publicKeyPath string) (*Signer, error) {
	keyBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyBytes)
	if err != nil {
		return nil, err
	}

	keyBytes, err = os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(keyBytes)
	if err != nil {
		return nil, err
	}

	return NewSigner(privateKey, publicKey), nil
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.New().String()
}

// Issue signs a token carrying sessionID that expires after ttl.
func (s *Signer) Issue(sessionID string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		sessionClaim: sessionID,
		"exp":        s.now().Add(ttl).Unix(),
	})
	return token.SignedString(s.privateKey)
}

// Verify checks the signature and expiry and returns the session id.
func (s *Signer) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.publicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sessionID, ok := claims[sessionClaim].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	return sessionID, nil
}
