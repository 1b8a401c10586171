package clean

import (
	"github.com/matthieukhl/salesclean/internal/models"
)

// Optional Noon column; item_nr stands in when it is absent or blank.
const noonPartnerSKUColumn = "partner_sku"

var noonLayout = Layout{
	Marketplace: models.Noon,
	Columns: []ColumnMap{
		{"ordered_date", models.FieldDate},
		{"item_nr", models.FieldOrderNumber},
		{"sku", models.FieldSKU},
		{"item_status", models.FieldStatus},
		{"id_partner", models.FieldPartnerID},
		{"country_code", models.FieldCountry},
		{"brand_en", models.FieldBrandName},
		{"family", models.FieldCategory},
		{"product_subtype", models.FieldSubCategory},
		{"marketplace", models.FieldChannel},
		{"title_en", models.FieldChannelItemName},
		{"is_fbn", models.FieldFulfillment},
		{"base_price", models.FieldSalesPrice},
	},
	Dates:       DateDayFirst,
	Excluded:    baseExcluded.with("Could Not Be Delivered"),
	Status:      noonStatus,
	Country:     countries,
	Channel:     noonChannels,
	Fulfillment: noonFulfillment,
	Partners:    noonPartners,
	Lookup:      models.LookupSKU,
	QTYLabel:    "Units",
	Derive:      deriveNoon,
}

func deriveNoon(rec *models.Record, row models.RawRow) {
	rec.PartnerSKU = row.Get(noonPartnerSKUColumn)
	if rec.PartnerSKU == "" {
		rec.PartnerSKU = rec.OrderNumber
	}
}
