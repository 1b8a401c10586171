package enrich

import (
	"strings"

	"github.com/matthieukhl/salesclean/internal/models"
	"github.com/matthieukhl/salesclean/internal/types"
)

// Stats summarises one lookup-fill pass
type Stats struct {
	Rows    int                  `json:"rows"`
	Matched int                  `json:"matched"`
	Missed  int                  `json:"missed"`
	Filled  map[models.Field]int `json:"filled"`
}

// FilledTotal returns the number of fields filled across all targets
func (s Stats) FilledTotal() int {
	total := 0
	for _, n := range s.Filled {
		total += n
	}
	return total
}

// Filler backfills blank brand and category data from the reference catalog.
// It never replaces a value that is already present.
type Filler struct {
	catalog types.Catalog
	key     models.LookupKey
}

func NewFiller(catalog types.Catalog, key models.LookupKey) *Filler {
	return &Filler{catalog: catalog, key: key}
}

// target pairs a record field with the catalog value that may fill it
type target struct {
	field models.Field
	dst   func(*models.Record) *string
	src   func(models.CatalogEntry) string
}

var targets = []target{
	{models.FieldBrandName, func(r *models.Record) *string { return &r.BrandName }, func(e models.CatalogEntry) string { return e.Brand }},
	{models.FieldCategory, func(r *models.Record) *string { return &r.Category }, func(e models.CatalogEntry) string { return e.Category }},
	{models.FieldSubCategory, func(r *models.Record) *string { return &r.SubCategory }, func(e models.CatalogEntry) string { return e.SubCategory }},
	{models.FieldChannelItemName, func(r *models.Record) *string { return &r.ChannelItemName }, func(e models.CatalogEntry) string { return e.ProductTitle }},
}

// Fill updates table records in place
func (f *Filler) Fill(table *models.Table) Stats {
	stats := Stats{Filled: make(map[models.Field]int, len(targets))}
	if table == nil || f.catalog == nil || f.key == models.LookupNone {
		return stats
	}

	for i := range table.Records {
		rec := &table.Records[i]
		stats.Rows++

		// Whitespace-only counts as missing; normalise before deciding what to fill.
		needs := false
		for _, t := range targets {
			p := t.dst(rec)
			if IsBlank(*p) {
				*p = ""
				needs = true
			}
		}
		if !needs {
			continue
		}

		entry, ok := f.catalog.Lookup(f.key, f.keyOf(rec))
		if !ok {
			stats.Missed++
			continue
		}
		stats.Matched++

		for _, t := range targets {
			p := t.dst(rec)
			if *p != "" {
				continue
			}
			if v := strings.TrimSpace(t.src(entry)); v != "" {
				*p = v
				stats.Filled[t.field]++
			}
		}
	}
	return stats
}

func (f *Filler) keyOf(rec *models.Record) string {
	if f.key == models.LookupPartnerSKU {
		return rec.PartnerSKU
	}
	return rec.SKU
}

// IsBlank reports an empty or whitespace-only value
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
