package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ovenlight/bakery-storefront/internal/api/handlers"
	"github.com/ovenlight/bakery-storefront/internal/repository"
	"github.com/ovenlight/bakery-storefront/internal/service"
)

// NewRouter builds the HTTP router for the catalog-service
func NewRouter(db *sql.DB) http.Handler {
	r := chi.NewRouter()

	repo := repository.NewCatalogRepo(db)
	svc := service.NewCatalogService(repo)
	catalogHandler := handlers.NewCatalogHandler(svc)

	// Storefront catalog endpoints
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		r.Options("/", catalogHandler.Preflight)
		r.Get("/{slug}", catalogHandler.GetProduct)
		r.Options("/{slug}", catalogHandler.Preflight)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
