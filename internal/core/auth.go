package core

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims identifies the acting PowerAdmin user of a request.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// AuthService issues and validates the HS256 bearer tokens that carry the
// acting user. It does not authenticate users itself; the PowerAdmin user
// table stays owned by PowerAdmin.
type AuthService struct {
	jwtSecret []byte
	jwtIssuer string
}

func NewAuthService(jwtSecret, jwtIssuer string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		jwtIssuer: jwtIssuer,
	}
}

// IssueToken creates a signed token for userID valid for ttl.
func (s *AuthService) IssueToken(userID int64, ttl time.Duration) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("invalid user id %d", userID)
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("token expired")
	}
	if err != nil {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("invalid token: missing user id")
	}
	return &claims, nil
}
