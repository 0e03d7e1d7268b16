package icatalogrepo

import (
	"context"
	"errors"

	"github.com/jasonsal23/offroad-paracord/internal/service/models/product"
)

var ErrNotFound = errors.New("product not found")

// ICatalogRepository serves the immutable product catalog.
type ICatalogRepository interface {
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
}
