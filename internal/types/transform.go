package types

import (
	"context"

	"github.com/matthieukhl/salesclean/internal/models"
)

// Transformer converts one marketplace's raw export into canonical records
type Transformer interface {
	Transform(ctx context.Context, raw *models.RawTable) (*models.Table, error)
	Marketplace() models.Marketplace
}

// Catalog resolves reference product data by SKU or Partner SKU
type Catalog interface {
	Lookup(kind models.LookupKey, key string) (models.CatalogEntry, bool)
}
