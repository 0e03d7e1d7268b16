package products

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jasonsal23/offroad-paracord/internal/dal/interfaces/icatalogrepo"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/money"
	"github.com/jasonsal23/offroad-paracord/internal/service/models/product"
	"github.com/jasonsal23/offroad-paracord/internal/transport/http/respond"
)

// catalog is an interface for the catalog repository.
type catalog interface {
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
}

type productResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Price                float64  `json:"price"`
	Image                string   `json:"image"`
	Categories           []string `json:"categories"`
	InStock              bool     `json:"inStock"`
	Featured             bool     `json:"featured"`
	Colors               []string `json:"colors"`
	VehicleCompatibility []string `json:"vehicleCompatibility"`
}

func toResponse(p product.Product) productResponse {
	return productResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Price:                money.DollarsFromCents(p.PriceCents),
		Image:                p.Image,
		Categories:           p.Categories,
		InStock:              p.InStock,
		Featured:             p.Featured,
		Colors:               p.Colors,
		VehicleCompatibility: p.VehicleCompatibility,
	}
}

// List returns the whole catalog.
func List(w http.ResponseWriter, r *http.Request, catalog catalog) {
	items, err := catalog.List(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to load products")
		slog.Error("Error listing products", "error", err)

		return
	}

	out := make([]productResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(p)
	}

	respond.JSON(w, http.StatusOK, map[string]any{"success": true, "products": out})
}

// Get returns a single product by id.
func Get(w http.ResponseWriter, r *http.Request, catalog catalog) {
	id := chi.URLParam(r, "productID")

	p, err := catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, icatalogrepo.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Product not found")

			return
		}
		respond.Error(w, http.StatusInternalServerError, "Failed to load product")
		slog.Error("Error getting product", "product_id", id, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"success": true, "product": toResponse(p)})
}
