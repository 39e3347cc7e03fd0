package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/skillpass/skillpass-server/internal/logger"
	"github.com/skillpass/skillpass-server/internal/model"
)

// Authenticate validates bearer tokens and injects the principal into context.
type Authenticate struct {
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the token and passes the
// request on with the principal in context. Requests without a valid token
// get 401 with a JSON error body.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" || tokenString == r.Header.Get("Authorization") {
			m.unauthorized(w, "Missing authorization token")
			return
		}

		principal, err := m.tokenManager.ParseToken(tokenString)
		if err != nil {
			m.logger.Debug("token rejected", "error", err)
			m.unauthorized(w, "Invalid authorization token")
			return
		}

		ctx := m.contextManager.SetPrincipalToContext(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
