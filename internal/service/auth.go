package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nachocoigodonnell/rixit/internal/apperror"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

type AuthService interface {
	GenerateToken(gameCode, playerID string) (string, error)
	ParseToken(token string) (*PlayerClaims, error)
}

// PlayerClaims binds a token to one seat: the subject is the player id and
// the game claim the code of the game they joined.
type PlayerClaims struct {
	GameCode string `json:"game"`
	jwt.RegisteredClaims
}

type authServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(secretKey string, ttl time.Duration) AuthService {
	return &authServiceImpl{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (that *authServiceImpl) GenerateToken(gameCode, playerID string) (string, error) {
	now := that.now()

	claims := PlayerClaims{
		GameCode: gameCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(that.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (that *authServiceImpl) ParseToken(tokenString string) (*PlayerClaims, error) {
	claims := &PlayerClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, token.Header["alg"])
		}

		return that.secretKey, nil
	}, jwt.WithTimeFunc(that.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" || claims.GameCode == "" {
		return nil, apperror.ErrInvalidToken
	}

	return claims, nil
}
