package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the textual form of a canonical Date
const DateLayout = "2006-01-02"

// Record is one cleaned sales line in the canonical schema shared by all marketplaces
type Record struct {
	Date            time.Time       `json:"date"`
	OrderNumber     string          `json:"order_number"`
	SKU             string          `json:"sku"`
	Status          string          `json:"status"`
	PartnerID       string          `json:"partner_id"`
	NubPartner      string          `json:"nub_partner"`
	Country         string          `json:"country"`
	BrandName       string          `json:"brand_name"`
	Category        string          `json:"category"`
	SubCategory     string          `json:"sub_category"`
	Channel         string          `json:"channel"`
	ChannelItemName string          `json:"channel_item_name"`
	PartnerSKU      string          `json:"partner_sku"`
	Fulfillment     string          `json:"fulfillment"`
	SalesPrice      decimal.Decimal `json:"sales_price"`
	QTY             int64           `json:"qty"`
	GMV             decimal.Decimal `json:"gmv"`

	// Timestamp keeps the full-precision source time until the date is truncated.
	Timestamp time.Time `json:"-"`
	// SourceLine is the 1-based line (or sheet row) the record was read from.
	SourceLine int `json:"-"`
}

// Month returns the full English month name of Date
func (r Record) Month() string { return r.Date.Month().String() }

// MonthNumber returns 1-12
func (r Record) MonthNumber() int { return int(r.Date.Month()) }

// Year returns the four digit year of Date
func (r Record) Year() int { return r.Date.Year() }

// Field identifies one canonical output column
type Field int

const (
	FieldDate Field = iota
	FieldMonth
	FieldMonthNumber
	FieldYear
	FieldOrderNumber
	FieldSKU
	FieldStatus
	FieldPartnerID
	FieldNubPartner
	FieldCountry
	FieldBrandName
	FieldCategory
	FieldSubCategory
	FieldChannel
	FieldChannelItemName
	FieldPartnerSKU
	FieldFulfillment
	FieldSalesPrice
	FieldQTY
	FieldGMV
)

var fieldHeaders = [...]string{
	FieldDate:            "Date",
	FieldMonth:           "Month",
	FieldMonthNumber:     "Month Number",
	FieldYear:            "Year",
	FieldOrderNumber:     "Order Number",
	FieldSKU:             "SKU",
	FieldStatus:          "Status",
	FieldPartnerID:       "Partner Id",
	FieldNubPartner:      "Nub Partner",
	FieldCountry:         "Country",
	FieldBrandName:       "Brand Name",
	FieldCategory:        "Category",
	FieldSubCategory:     "Sub-Category",
	FieldChannel:         "Channel",
	FieldChannelItemName: "Channel Item Name",
	FieldPartnerSKU:      "Partner SKU",
	FieldFulfillment:     "Fulfillment",
	FieldSalesPrice:      "Sales Price",
	FieldQTY:             "QTY",
	FieldGMV:             "GMV",
}

// Header returns the canonical column label
func (f Field) Header() string {
	if f < 0 || int(f) >= len(fieldHeaders) {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldHeaders[f]
}

// CanonicalOrder is the output column order shared by every implemented marketplace.
var CanonicalOrder = []Field{
	FieldDate, FieldMonth, FieldMonthNumber, FieldYear,
	FieldOrderNumber, FieldSKU, FieldStatus, FieldPartnerID, FieldNubPartner,
	FieldCountry, FieldBrandName, FieldCategory, FieldSubCategory,
	FieldChannel, FieldChannelItemName, FieldPartnerSKU, FieldFulfillment,
	FieldSalesPrice, FieldQTY, FieldGMV,
}

// Value returns the typed cell value of a field, suitable for spreadsheet output
func (r Record) Value(f Field) any {
	switch f {
	case FieldDate:
		return r.Date
	case FieldMonthNumber:
		return r.MonthNumber()
	case FieldYear:
		return r.Year()
	case FieldSalesPrice:
		return r.SalesPrice.InexactFloat64()
	case FieldQTY:
		return r.QTY
	case FieldGMV:
		return r.GMV.InexactFloat64()
	default:
		return r.Text(f)
	}
}

// Text returns the field rendered as text
func (r Record) Text(f Field) string {
	switch f {
	case FieldDate:
		return r.Date.Format(DateLayout)
	case FieldMonth:
		return r.Month()
	case FieldMonthNumber:
		return strconv.Itoa(r.MonthNumber())
	case FieldYear:
		return strconv.Itoa(r.Year())
	case FieldOrderNumber:
		return r.OrderNumber
	case FieldSKU:
		return r.SKU
	case FieldStatus:
		return r.Status
	case FieldPartnerID:
		return r.PartnerID
	case FieldNubPartner:
		return r.NubPartner
	case FieldCountry:
		return r.Country
	case FieldBrandName:
		return r.BrandName
	case FieldCategory:
		return r.Category
	case FieldSubCategory:
		return r.SubCategory
	case FieldChannel:
		return r.Channel
	case FieldChannelItemName:
		return r.ChannelItemName
	case FieldPartnerSKU:
		return r.PartnerSKU
	case FieldFulfillment:
		return r.Fulfillment
	case FieldSalesPrice:
		return r.SalesPrice.String()
	case FieldQTY:
		return strconv.FormatInt(r.QTY, 10)
	case FieldGMV:
		return r.GMV.String()
	}
	return ""
}

// Column is one output column with its header label
type Column struct {
	Field Field  `json:"field"`
	Label string `json:"label"`
}

// Table is the cleaned result of one run
type Table struct {
	Marketplace Marketplace `json:"marketplace"`
	Columns     []Column    `json:"columns"`
	Records     []Record    `json:"records"`
	Stats       TableStats  `json:"stats"`
}

// TableStats counts what happened to the source rows during a transform
type TableStats struct {
	RowsIn          int `json:"rows_in"`
	MissingRequired int `json:"missing_required"`
	Excluded        int `json:"excluded"`
	RowsOut         int `json:"rows_out"`
}

// Header returns the column labels in output order
func (t *Table) Header() []string {
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Label
	}
	return header
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// CatalogEntry is one row of the master product table
type CatalogEntry struct {
	SKU          string `json:"sku"`
	PartnerSKU   string `json:"partner_sku"`
	Brand        string `json:"brand"`
	Category     string `json:"category"`
	SubCategory  string `json:"sub_category"`
	ProductTitle string `json:"product_title"`
}

// LookupKey selects the record field joined against the reference catalog
type LookupKey int

const (
	LookupNone LookupKey = iota
	LookupSKU
	LookupPartnerSKU
)

func (k LookupKey) String() string {
	switch k {
	case LookupSKU:
		return "SKU"
	case LookupPartnerSKU:
		return "Partner SKU"
	}
	return "none"
}
