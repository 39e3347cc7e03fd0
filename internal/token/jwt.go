package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skillpass/skillpass-server/internal/model"
)

// Claims represents JWT claims with user identity and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID      `json:"user_id"`
	Email  string         `json:"email"`
	Role   model.UserRole `json:"role"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// token lifetime in hours.
func NewJWT(secretKey string, expirationHours int) model.TokenManager {
	return &JWT{
		secretKey: secretKey,
		ttl:       time.Duration(expirationHours) * time.Hour,
	}
}

// GenerateToken creates a signed bearer token for the user.
func (j *JWT) GenerateToken(user model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken validates a bearer token and extracts the principal.
func (j *JWT) ParseToken(tokenString string) (model.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return model.Principal{}, fmt.Errorf("token is invalid")
	}
	if claims.UserID == uuid.Nil {
		return model.Principal{}, fmt.Errorf("token carries no user id")
	}
	role, err := model.ParseUserRole(string(claims.Role))
	if err != nil {
		return model.Principal{}, fmt.Errorf("token carries invalid role: %w", err)
	}

	return model.Principal{UserID: claims.UserID, Role: role}, nil
}
