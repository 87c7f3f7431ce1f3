package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ovenlight/bakery-storefront/internal/models"
)

// --- Response DTOs ---

type ListProductsResponse struct {
	Message    string            `json:"message"`
	Product    []models.Product  `json:"product"`
	Pagination models.Pagination `json:"pagination"`
}

type ProductResponse struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

// --- Handler struct & constructor ---

// CatalogProvider is what the handlers need from the service layer.
type CatalogProvider interface {
	ListProducts(ctx context.Context, f models.CatalogFilter) (*models.CatalogPage, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type CatalogHandler struct {
	service CatalogProvider
}

func NewCatalogHandler(svc CatalogProvider) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
}

// parseCatalogFilter normalizes the raw query-parameter bag. Malformed
// numerics and unknown enum values are dropped or defaulted, never rejected.
func parseCatalogFilter(q url.Values) models.CatalogFilter {
	f := models.CatalogFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		Collection: q.Get("collection"),
		Sort:       q.Get("sort"),
		Page:       models.NormalizePage(q.Get("page")),
		Limit:      models.NormalizeLimit(q.Get("limit")),
	}

	if v := q.Get("category_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			f.CategoryID = &id
		}
	}
	// category_slug is ignored when category_id is present
	if f.CategoryID == nil {
		f.CategorySlug = q.Get("category_slug")
	}

	if raw := q.Get("ingredients"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if ing := strings.TrimSpace(part); ing != "" {
				f.Ingredients = append(f.Ingredients, ing)
			}
		}
	}

	if s := q.Get("seasonal"); models.IsValidSeason(s) {
		f.Seasonal = s
	}

	switch q.Get("is_available") {
	case "true":
		v := true
		f.IsAvailable = &v
	case "false":
		v := false
		f.IsAvailable = &v
	}

	if raw := q.Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinPrice = &v
		}
	}
	if raw := q.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxPrice = &v
		}
	}

	return f
}

// --- Handlers ---

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	f := parseCatalogFilter(r.URL.Query())

	page, err := h.service.ListProducts(r.Context(), f)
	if err != nil {
		log.Printf("list products: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch products"})
		return
	}

	setCORSHeaders(w)
	writeJSON(w, http.StatusOK, ListProductsResponse{
		Message:    "products fetched successfully",
		Product:    page.Products,
		Pagination: page.Pagination,
	})
}

// GetProduct handles GET /api/products/{slug}
// Unlike the listing, the detail response is cacheable.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := h.service.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		log.Printf("get product %q: %v", slug, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch product"})
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, ProductResponse{
		Message: "product fetched successfully",
		Product: p,
	})
}

// Preflight handles OPTIONS for the catalog endpoints.
func (h *CatalogHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.WriteHeader(http.StatusOK)
}
