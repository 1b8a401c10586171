package clean

import (
	"github.com/matthieukhl/salesclean/internal/models"
)

// ColumnMap copies one source column into a canonical field
type ColumnMap struct {
	Source string
	Field  models.Field
}

// Layout is the static description of one marketplace export: which columns it
// carries, how its vocabulary maps onto the canonical one, and which fields are
// derived or constant.
type Layout struct {
	Marketplace models.Marketplace
	Columns     []ColumnMap
	// Extra lists source columns read by Derive that are not mapped one to one.
	Extra []string
	// SheetColumn tags every row with the sheet it came from under this header.
	SheetColumn string

	Dates DateStrategy
	// SortByTimestamp orders rows by full source time before the time part is dropped.
	SortByTimestamp bool

	Excluded    StatusSet
	Status      Substitution
	Country     Substitution
	Channel     Substitution
	Fulfillment Substitution

	Partners PartnerTable
	Brands   BrandRules
	Lookup   models.LookupKey

	// QTYLabel overrides the output header of the quantity column.
	QTYLabel string
	// Derive fills constant and computed fields once the mapped columns are copied.
	Derive func(rec *models.Record, row models.RawRow)
}

// RequiredColumns returns every source column the layout reads, in mapping order
func (l Layout) RequiredColumns() []string {
	cols := make([]string, 0, len(l.Columns)+len(l.Extra))
	for _, c := range l.Columns {
		cols = append(cols, c.Source)
	}
	return append(cols, l.Extra...)
}

// SourceOf returns the source header mapped onto f, or "" when f is not read directly
func (l Layout) SourceOf(f models.Field) string {
	for _, c := range l.Columns {
		if c.Field == f {
			return c.Source
		}
	}
	return ""
}

// OutputColumns returns the canonical columns with this marketplace's labels
func (l Layout) OutputColumns() []models.Column {
	cols := make([]models.Column, len(models.CanonicalOrder))
	for i, f := range models.CanonicalOrder {
		label := f.Header()
		if f == models.FieldQTY && l.QTYLabel != "" {
			label = l.QTYLabel
		}
		cols[i] = models.Column{Field: f, Label: label}
	}
	return cols
}

var layouts = map[models.Marketplace]Layout{
	models.Noon:   noonLayout,
	models.Amazon: amazonLayout,
	models.Revibe: revibeLayout,
}

// LayoutFor returns the layout of an implemented marketplace
func LayoutFor(m models.Marketplace) (Layout, bool) {
	l, ok := layouts[m]
	return l, ok
}
