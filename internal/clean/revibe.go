package clean

import (
	"strings"

	"github.com/matthieukhl/salesclean/internal/models"
)

const (
	revibeModelColumn     = "Model"
	revibeVariationColumn = "Variation: Color, Storage, Condition"

	revibeBrand   = "Apple"
	revibeChannel = "Revibe"
)

var revibeLayout = Layout{
	Marketplace: models.Revibe,
	Columns: []ColumnMap{
		{"Last Update Date", models.FieldDate},
		{"id", models.FieldOrderNumber},
		{"SKU (Old: Order Status)", models.FieldSKU},
		{"Shipment Status", models.FieldStatus},
		{"Supplier", models.FieldPartnerID},
		{"Country", models.FieldCountry},
		{"Category", models.FieldCategory},
		{"Condition", models.FieldSubCategory},
		{"Actual Cost", models.FieldSalesPrice},
	},
	Extra:           []string{revibeModelColumn, revibeVariationColumn},
	Dates:           DateDirect,
	SortByTimestamp: true,
	Excluded:        baseExcluded.with("Processing"),
	Status:          revibeStatus,
	Country:         countries,
	Partners:        revibePartners,
	Lookup:          models.LookupNone,
	Derive:          deriveRevibe,
}

// Revibe only lists refurbished Apple devices it fulfils itself.
func deriveRevibe(rec *models.Record, row models.RawRow) {
	rec.BrandName = revibeBrand
	rec.Channel = revibeChannel
	rec.Fulfillment = models.FulfillmentRevibe
	rec.PartnerSKU = rec.SKU
	rec.ChannelItemName = strings.TrimSpace(row.Get(revibeModelColumn) + " " + row.Get(revibeVariationColumn))
}
