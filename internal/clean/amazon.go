package clean

import (
	"github.com/matthieukhl/salesclean/internal/models"
)

// AmazonPartnerColumn carries the workbook sheet name: each sheet of an Amazon
// export belongs to one partner.
const AmazonPartnerColumn = "Partner ID"

var amazonLayout = Layout{
	Marketplace: models.Amazon,
	Columns: []ColumnMap{
		{"purchase-date", models.FieldDate},
		{"amazon-order-id", models.FieldOrderNumber},
		{"sku", models.FieldSKU},
		{"item-status", models.FieldStatus},
		{AmazonPartnerColumn, models.FieldPartnerID},
		{"ship-country", models.FieldCountry},
		{"sales-channel", models.FieldChannel},
		{"product-name", models.FieldChannelItemName},
		{"asin", models.FieldPartnerSKU},
		{"fulfillment-channel", models.FieldFulfillment},
		{"item-price", models.FieldSalesPrice},
		{"quantity", models.FieldQTY},
	},
	SheetColumn: AmazonPartnerColumn,
	Dates:       DateDirect,
	Excluded:    baseExcluded,
	Status:      amazonStatus,
	Country:     countries,
	Channel:     amazonChannels,
	Fulfillment: amazonFulfillment,
	Partners:    amazonPartners,
	Brands:      amazonBrands,
	Lookup:      models.LookupSKU,
}
