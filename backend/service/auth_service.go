package service

import (
	"errors"
	"time"

	"chatspace/backend/common"
	"chatspace/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenDuration  = 24 * time.Hour
	refreshTokenDuration = 7 * 24 * time.Hour
	tokenIssuer          = "chatspace"
)

// JWTClaims carries the identity of an authenticated user.
type JWTClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     int    `json:"role"`
	jwt.RegisteredClaims
}

func newClaims(user *model.User, duration time.Duration) JWTClaims {
	now := time.Now()
	return JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.Username,
		},
	}
}

// GenerateToken signs a short-lived access token for user.
func GenerateToken(user *model.User) (string, error) {
	claims := newClaims(user, accessTokenDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(common.JWTSecret))
}

// GenerateRefreshToken signs a long-lived refresh token for user.
func GenerateRefreshToken(user *model.User) (string, error) {
	claims := newClaims(user, refreshTokenDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(common.JWTRefreshSecret))
}

// ValidateToken parses and verifies an access token.
func ValidateToken(tokenString string) (*JWTClaims, error) {
	return validateWithSecret(tokenString, common.JWTSecret)
}

// ValidateRefreshToken parses and verifies a refresh token.
func ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	return validateWithSecret(tokenString, common.JWTRefreshSecret)
}

func validateWithSecret(tokenString string, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// BlacklistToken invalidates an access token until it would have expired.
// Without redis, logout relies on client-side token disposal.
func BlacklistToken(tokenString string) {
	if !common.RedisEnabled || common.RDB == nil {
		return
	}
	_ = common.RedisSet("jwt:blacklist:"+tokenString, "1", accessTokenDuration)
}
