package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/matthieukhl/salesclean/internal/ingest"
	"github.com/matthieukhl/salesclean/internal/models"
	"golang.org/x/text/unicode/norm"
)

// Catalog is the read-only master product table used to backfill brand and category data
type Catalog struct {
	source       string
	entries      int
	bySKU        map[string]models.CatalogEntry
	byPartnerSKU map[string]models.CatalogEntry
	missing      bool
}

// Recognised catalog headers, matched case-insensitively
var (
	skuHeaders         = []string{"SKU"}
	partnerSKUHeaders  = []string{"Partner SKU"}
	brandHeaders       = []string{"Brand", "Brand Name"}
	categoryHeaders    = []string{"Category"}
	subCategoryHeaders = []string{"Sub-Category", "Sub Category"}
	titleHeaders       = []string{"Product Titles", "Product Title"}
)

// Empty returns a catalog with no entries; every lookup misses
func Empty() *Catalog {
	return New("", nil)
}

// New indexes entries by SKU and Partner SKU. The first entry seen for a key wins.
func New(source string, entries []models.CatalogEntry) *Catalog {
	c := &Catalog{
		source:       source,
		entries:      len(entries),
		bySKU:        make(map[string]models.CatalogEntry, len(entries)),
		byPartnerSKU: make(map[string]models.CatalogEntry),
	}
	for _, e := range entries {
		if k := NormalizeKey(e.SKU); k != "" {
			if _, dup := c.bySKU[k]; !dup {
				c.bySKU[k] = e
			}
		}
		if k := NormalizeKey(e.PartnerSKU); k != "" {
			if _, dup := c.byPartnerSKU[k]; !dup {
				c.byPartnerSKU[k] = e
			}
		}
	}
	return c
}

// Load reads the catalog file at path (CSV or Excel)
func Load(ctx context.Context, path string) (*Catalog, error) {
	raw, err := ingest.NewIngester(ingest.Options{}).Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	entries, err := parseEntries(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return New(path, entries), nil
}

// Open loads the catalog at path. When the file does not exist and the catalog is
// optional, an empty catalog marked Missing is returned instead of an error.
func Open(ctx context.Context, path string, required bool) (*Catalog, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if required {
			return nil, fmt.Errorf("failed to load catalog: %s does not exist", path)
		}
		c := New(path, nil)
		c.missing = true
		return c, nil
	}
	return Load(ctx, path)
}

// Missing reports a catalog that was configured but not found on disk
func (c *Catalog) Missing() bool {
	return c != nil && c.missing
}

func parseEntries(raw *models.RawTable) ([]models.CatalogEntry, error) {
	sku := resolve(raw.Headers, skuHeaders)
	partnerSKU := resolve(raw.Headers, partnerSKUHeaders)
	if sku == "" && partnerSKU == "" {
		return nil, fmt.Errorf("catalog needs a SKU or Partner SKU column")
	}

	brand := resolve(raw.Headers, brandHeaders)
	category := resolve(raw.Headers, categoryHeaders)
	subCategory := resolve(raw.Headers, subCategoryHeaders)
	var missing []string
	for _, c := range []struct{ label, col string }{
		{"Brand", brand}, {"Category", category}, {"Sub-Category", subCategory},
	} {
		if c.col == "" {
			missing = append(missing, c.label)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("catalog is missing columns: %s", strings.Join(missing, ", "))
	}
	title := resolve(raw.Headers, titleHeaders)

	entries := make([]models.CatalogEntry, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		entries = append(entries, models.CatalogEntry{
			SKU:          row.Get(sku),
			PartnerSKU:   row.Get(partnerSKU),
			Brand:        row.Get(brand),
			Category:     row.Get(category),
			SubCategory:  row.Get(subCategory),
			ProductTitle: row.Get(title),
		})
	}
	return entries, nil
}

// resolve returns the actual header matching one of the candidates, or ""
func resolve(headers []string, candidates []string) string {
	for _, c := range candidates {
		for _, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), c) {
				return h
			}
		}
	}
	return ""
}

// Lookup finds the entry for key in the chosen column
func (c *Catalog) Lookup(kind models.LookupKey, key string) (models.CatalogEntry, bool) {
	if c == nil {
		return models.CatalogEntry{}, false
	}
	k := NormalizeKey(key)
	if k == "" {
		return models.CatalogEntry{}, false
	}
	var (
		e  models.CatalogEntry
		ok bool
	)
	switch kind {
	case models.LookupPartnerSKU:
		e, ok = c.byPartnerSKU[k]
	case models.LookupSKU:
		e, ok = c.bySKU[k]
	}
	return e, ok
}

// Len returns the number of catalog rows read
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return c.entries
}

// Keys returns the number of distinct SKU and Partner SKU keys
func (c *Catalog) Keys() (sku, partnerSKU int) {
	if c == nil {
		return 0, 0
	}
	return len(c.bySKU), len(c.byPartnerSKU)
}

// Source returns the path the catalog was loaded from
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// NormalizeKey trims, applies NFKC and drops the ".0" suffix spreadsheets add to
// numeric SKUs, so "12345.0" and " 12345" join with "12345".
func NormalizeKey(key string) string {
	key = norm.NFKC.String(strings.TrimSpace(key))
	if strings.HasSuffix(key, ".0") && isDigits(strings.TrimSuffix(key, ".0")) {
		key = strings.TrimSuffix(key, ".0")
	}
	return key
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
