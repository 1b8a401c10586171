package clean

import (
	"fmt"

	"github.com/matthieukhl/salesclean/internal/models"
	"github.com/matthieukhl/salesclean/internal/types"
)

// New returns the transformer for a marketplace
func New(m models.Marketplace) (types.Transformer, error) {
	switch m {
	case models.Noon, models.Amazon, models.Revibe:
		layout, _ := LayoutFor(m)
		return NewCleaner(layout), nil
	case models.Talabat, models.Careem:
		return &pending{marketplace: m}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMarketplace, m)
	}
}

// Implemented reports whether m has a working transform
func Implemented(m models.Marketplace) bool {
	_, ok := LayoutFor(m)
	return ok
}

// Info describes a marketplace for listings
type Info struct {
	Marketplace models.Marketplace `json:"marketplace"`
	Implemented bool               `json:"implemented"`
	Columns     []string           `json:"columns,omitempty"`
	SheetColumn string             `json:"sheet_column,omitempty"`
	Lookup      string             `json:"lookup"`
	Output      string             `json:"output"`
}

// Supported lists every marketplace in display order
func Supported() []Info {
	infos := make([]Info, 0, len(models.Marketplaces))
	for _, m := range models.Marketplaces {
		info := Info{Marketplace: m, Lookup: models.LookupNone.String(), Output: m.OutputName()}
		if layout, ok := LayoutFor(m); ok {
			info.Implemented = true
			info.Columns = layout.RequiredColumns()
			info.SheetColumn = layout.SheetColumn
			info.Lookup = layout.Lookup.String()
		}
		infos = append(infos, info)
	}
	return infos
}
