package clean

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/matthieukhl/salesclean/internal/models"
)

// Stage names reported in StageError
const (
	StageIngest   = "ingest"
	StageProject  = "project"
	StageSelect   = "select"
	StageFilter   = "filter"
	StageDates    = "dates"
	StageNormal   = "normalize"
	StageClassify = "classify"
	StageBrands   = "brands"
	StageAmounts  = "amounts"
)

// Cleaner runs the transform described by a Layout
type Cleaner struct {
	layout Layout
}

func NewCleaner(layout Layout) *Cleaner {
	return &Cleaner{layout: layout}
}

func (c *Cleaner) Marketplace() models.Marketplace {
	return c.layout.Marketplace
}

// Layout exposes the static description the cleaner was built from
func (c *Cleaner) Layout() Layout {
	return c.layout
}

// draft is a record under construction together with the raw text of the
// fields that still need parsing
type draft struct {
	rec       models.Record
	row       models.RawRow
	rawStatus string
	date      string
	price     string
	qty       string
}

// Transform turns the raw export into canonical records. The first failing stage
// aborts the whole run.
func (c *Cleaner) Transform(ctx context.Context, raw *models.RawTable) (*models.Table, error) {
	if raw == nil {
		return nil, c.fail(StageProject, fmt.Errorf("%w: no input table", ErrIngestion))
	}
	stats := models.TableStats{RowsIn: len(raw.Rows)}

	if missing := raw.MissingColumns(c.layout.RequiredColumns()); len(missing) > 0 {
		return nil, c.fail(StageProject, fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", ")))
	}

	drafts := c.selectRows(raw.Rows, &stats)

	steps := []struct {
		stage string
		run   func([]draft) ([]draft, error)
	}{
		{StageFilter, func(ds []draft) ([]draft, error) { return c.filter(ds, &stats), nil }},
		{StageDates, c.dates},
		{StageNormal, c.normalize},
		{StageClassify, c.classify},
		{StageBrands, c.brands},
		{StageAmounts, c.amounts},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, c.fail(step.stage, err)
		}
		var err error
		if drafts, err = step.run(drafts); err != nil {
			return nil, c.fail(step.stage, err)
		}
	}

	table := &models.Table{
		Marketplace: c.layout.Marketplace,
		Columns:     c.layout.OutputColumns(),
		Records:     make([]models.Record, len(drafts)),
	}
	for i := range drafts {
		table.Records[i] = drafts[i].rec
	}
	stats.RowsOut = len(table.Records)
	table.Stats = stats
	return table, nil
}

func (c *Cleaner) fail(stage string, err error) error {
	return &StageError{Marketplace: c.layout.Marketplace, Stage: stage, Err: err}
}

// selectRows projects every raw row onto the canonical fields and drops rows
// without a Date, SKU or Status.
func (c *Cleaner) selectRows(rows []models.RawRow, stats *models.TableStats) []draft {
	drafts := make([]draft, 0, len(rows))
	for _, row := range rows {
		d := draft{row: row, rec: models.Record{SourceLine: row.Line}}
		for _, m := range c.layout.Columns {
			d.assign(m.Field, row.Get(m.Source))
		}
		if c.layout.Derive != nil {
			c.layout.Derive(&d.rec, row)
		}
		d.rawStatus = d.rec.Status

		if d.date == "" || d.rec.SKU == "" || d.rec.Status == "" {
			stats.MissingRequired++
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts
}

func (d *draft) assign(f models.Field, value string) {
	switch f {
	case models.FieldDate:
		d.date = value
	case models.FieldSalesPrice:
		d.price = value
	case models.FieldQTY:
		d.qty = value
	default:
		if p := textField(&d.rec, f); p != nil {
			*p = value
		}
	}
}

// textField returns the string field of rec behind f, nil for typed fields
func textField(rec *models.Record, f models.Field) *string {
	switch f {
	case models.FieldOrderNumber:
		return &rec.OrderNumber
	case models.FieldSKU:
		return &rec.SKU
	case models.FieldStatus:
		return &rec.Status
	case models.FieldPartnerID:
		return &rec.PartnerID
	case models.FieldCountry:
		return &rec.Country
	case models.FieldBrandName:
		return &rec.BrandName
	case models.FieldCategory:
		return &rec.Category
	case models.FieldSubCategory:
		return &rec.SubCategory
	case models.FieldChannel:
		return &rec.Channel
	case models.FieldChannelItemName:
		return &rec.ChannelItemName
	case models.FieldPartnerSKU:
		return &rec.PartnerSKU
	case models.FieldFulfillment:
		return &rec.Fulfillment
	}
	return nil
}

// filter drops rows whose status is excluded, before or after normalization
func (c *Cleaner) filter(ds []draft, stats *models.TableStats) []draft {
	kept := ds[:0]
	for _, d := range ds {
		if c.layout.Excluded.Has(d.rawStatus) || c.layout.Excluded.Has(c.layout.Status.Apply(d.rawStatus)) {
			stats.Excluded++
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

func (c *Cleaner) dates(ds []draft) ([]draft, error) {
	parser := newDateParser(c.layout.Dates)
	column := c.layout.SourceOf(models.FieldDate)
	for i := range ds {
		t, err := parser.Parse(ds[i].date)
		if err != nil {
			return nil, fmt.Errorf("%w (%v)", rowError(ErrDateParse, ds[i].row, column, ds[i].date), err)
		}
		ds[i].rec.Timestamp = t
	}

	if c.layout.SortByTimestamp {
		sort.SliceStable(ds, func(a, b int) bool {
			return ds[a].rec.Timestamp.Before(ds[b].rec.Timestamp)
		})
	}
	for i := range ds {
		ds[i].rec.Date = calendarDate(ds[i].rec.Timestamp)
	}
	return ds, nil
}

func (c *Cleaner) normalize(ds []draft) ([]draft, error) {
	for i := range ds {
		rec := &ds[i].rec
		rec.Status = c.layout.Status.Apply(rec.Status)
		rec.Country = c.layout.Country.Apply(rec.Country)
		rec.Channel = c.layout.Channel.Apply(rec.Channel)
		rec.Fulfillment = c.layout.Fulfillment.Apply(rec.Fulfillment)
	}
	return ds, nil
}

func (c *Cleaner) classify(ds []draft) ([]draft, error) {
	for i := range ds {
		rec := &ds[i].rec
		rec.PartnerID = normalizeID(rec.PartnerID)
		rec.NubPartner = c.layout.Partners.Classify(rec.PartnerID)
	}
	return ds, nil
}

// brands applies keyword rules to titles whose brand is not known yet
func (c *Cleaner) brands(ds []draft) ([]draft, error) {
	if len(c.layout.Brands) == 0 {
		return ds, nil
	}
	for i := range ds {
		rec := &ds[i].rec
		if strings.TrimSpace(rec.BrandName) != "" {
			continue
		}
		rule, ok := c.layout.Brands.Match(rec.ChannelItemName)
		if !ok {
			continue
		}
		rec.BrandName = rule.Brand
		if strings.TrimSpace(rec.Category) == "" {
			rec.Category = rule.Category
		}
		if strings.TrimSpace(rec.SubCategory) == "" {
			rec.SubCategory = rule.SubCategory
		}
	}
	return ds, nil
}

func (c *Cleaner) amounts(ds []draft) ([]draft, error) {
	priceColumn := c.layout.SourceOf(models.FieldSalesPrice)
	qtyColumn := c.layout.SourceOf(models.FieldQTY)
	for i := range ds {
		d := &ds[i]
		price, err := ParseAmount(d.price)
		if err != nil {
			return nil, rowError(ErrMalformedValue, d.row, priceColumn, d.price)
		}
		qty, err := ParseQuantity(d.qty)
		if err != nil {
			return nil, rowError(ErrMalformedValue, d.row, qtyColumn, d.qty)
		}
		d.rec.SalesPrice = price
		d.rec.QTY = qty
		d.rec.GMV = GMV(d.rec.Status, price, qty)
	}
	return ds, nil
}

// GMV is price times quantity; cancelled lines carry no value
func GMV(status string, price decimal.Decimal, qty int64) decimal.Decimal {
	if strings.EqualFold(strings.TrimSpace(status), models.StatusCancelled) {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(qty))
}

// ParseAmount reads a monetary value. Blank is zero; currency codes and thousands
// separators around the number are ignored, and a parenthesised value is negative.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-' && r != '.' && r != '(' && r != ')'
	})
	s = strings.TrimSpace(s)

	open, closed := strings.HasPrefix(s, "("), strings.HasSuffix(s, ")")
	if open != closed {
		return decimal.Zero, fmt.Errorf("unbalanced parentheses in %q", s)
	}
	if open {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" || strings.ContainsAny(inner, "-()") {
			return decimal.Zero, fmt.Errorf("malformed amount %q", s)
		}
		d, err := decimal.NewFromString(inner)
		if err != nil {
			return decimal.Zero, err
		}
		return d.Neg(), nil
	}
	return decimal.NewFromString(s)
}

// ParseQuantity reads a whole unit count. Blank means a single unit.
func ParseQuantity(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || d.IsNegative() {
		return 0, fmt.Errorf("not a unit count: %s", s)
	}
	return d.IntPart(), nil
}
