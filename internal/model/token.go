package model

// TokenManager generates and validates bearer tokens for authenticated principals.
type TokenManager interface {
	GenerateToken(user User) (string, error)
	ParseToken(token string) (Principal, error)
}
