package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillpass/skillpass-server/internal/api/http/handler"
	"github.com/skillpass/skillpass-server/internal/api/http/middleware"
)

// New builds the route table. Verification endpoints are public; everything
// else under /api requires a bearer token.
func New(
	health *handler.Health,
	auth *handler.Auth,
	institution *handler.Institution,
	credential *handler.Credential,
	authenticate *middleware.Authenticate,
	logging *middleware.Logging,
) http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Handle)

	r.Get("/health", health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)

		r.Get("/credentials/verify/{publicID}", credential.Verify)
		r.Post("/credentials/verify-qr", credential.VerifyQR)

		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handle)

			r.Post("/institutions/register", institution.Register)
			r.Get("/institutions/me", institution.Me)

			r.Post("/credentials/issue", credential.Issue)
			r.Get("/credentials/my", credential.My)
			r.Get("/credentials/issued", credential.Issued)
			r.Get("/credentials/{publicID}", credential.Get)
			r.Post("/credentials/{publicID}/revoke", credential.Revoke)
			r.Get("/credentials/{publicID}/qr", credential.QR)
		})
	})

	return r
}
