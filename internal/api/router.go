package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/kiranshivaraju/cardapio/internal/api/middleware"
	"github.com/kiranshivaraju/cardapio/internal/api/response"
	"github.com/kiranshivaraju/cardapio/internal/metrics"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth            *mw.Auth
	AdminRateLimit  *mw.RateLimit
	PublicRateLimit *mw.RateLimit
	Metrics         *metrics.Metrics

	HealthHandler  http.HandlerFunc
	MetricsHandler http.Handler

	PublicMenu     http.HandlerFunc
	MenuTemplates  http.HandlerFunc
	AdminTemplates http.HandlerFunc

	ListCategories    http.HandlerFunc
	CreateCategory    http.HandlerFunc
	DeleteCategory    http.HandlerFunc
	SetCategoryActive http.HandlerFunc

	ListItems     http.HandlerFunc
	CreateItem    http.HandlerFunc
	UpdateItem    http.HandlerFunc
	DeleteItem    http.HandlerFunc
	SetItemActive http.HandlerFunc

	GetSettings         http.HandlerFunc
	UpdateInfo          http.HandlerFunc
	UpdateMenuTemplate  http.HandlerFunc
	UpdateAdminTemplate http.HandlerFunc
	Dashboard           http.HandlerFunc

	Upload http.HandlerFunc
	QRCode http.HandlerFunc

	CreateKey http.HandlerFunc
	ListKeys  http.HandlerFunc
	RevokeKey http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Metrics(deps.Metrics))
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// Public menu routes
	r.Group(func(r chi.Router) {
		r.Use(deps.PublicRateLimit.Limit)

		r.Get("/api/v1/menus/{slug}", orNotImplemented(deps.PublicMenu))
		r.Get("/api/v1/templates/menu", orNotImplemented(deps.MenuTemplates))
		r.Get("/api/v1/templates/admin", orNotImplemented(deps.AdminTemplates))
	})

	// Admin routes
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.AdminRateLimit.Limit)

		r.Get("/categories", orNotImplemented(deps.ListCategories))
		r.Post("/categories", orNotImplemented(deps.CreateCategory))
		r.Delete("/categories/{id}", orNotImplemented(deps.DeleteCategory))
		r.Put("/categories/{id}/active", orNotImplemented(deps.SetCategoryActive))

		r.Get("/items", orNotImplemented(deps.ListItems))
		r.Post("/items", orNotImplemented(deps.CreateItem))
		r.Put("/items/{id}", orNotImplemented(deps.UpdateItem))
		r.Delete("/items/{id}", orNotImplemented(deps.DeleteItem))
		r.Put("/items/{id}/active", orNotImplemented(deps.SetItemActive))

		r.Get("/organization", orNotImplemented(deps.GetSettings))
		r.Put("/organization/info", orNotImplemented(deps.UpdateInfo))
		r.Put("/organization/menu-template", orNotImplemented(deps.UpdateMenuTemplate))
		r.Put("/organization/admin-template", orNotImplemented(deps.UpdateAdminTemplate))
		r.Get("/dashboard", orNotImplemented(deps.Dashboard))

		r.Post("/uploads", orNotImplemented(deps.Upload))
		r.Get("/qrcode", orNotImplemented(deps.QRCode))

		r.Post("/keys", orNotImplemented(deps.CreateKey))
		r.Get("/keys", orNotImplemented(deps.ListKeys))
		r.Delete("/keys/{id}", orNotImplemented(deps.RevokeKey))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
