package samples

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// File names written by Write
const (
	NoonFile    = "noon_sample.csv"
	AmazonFile  = "amazon_sample.xlsx"
	RevibeFile  = "revibe_sample.csv"
	CatalogFile = "master_catalog.csv"
)

var noonRows = [][]string{
	{"ordered_date", "item_nr", "sku", "item_status", "id_partner", "country_code", "brand_en", "family", "product_subtype", "marketplace", "title_en", "is_fbn", "base_price"},
	{"15/01/2024 10:30", "NN1001", "SKU-N1", "Shipped", "46272", "AE", "", "", "", "noon", "", "1", "120.50"},
	{"16/01/2024", "NN1002", "SKU-N2", "CIR", "181587.0", "SA", "Glow Lab", "Beauty", "Skincare", "noon rocket", "Glow Lab Serum 30ml", "0", "99"},
	{"17/01/2024", "NN1003", "SKU-N3", "Pending", "47461", "KW", "Glow Lab", "Beauty", "Skincare", "noon", "Glow Lab Toner", "1", "45"},
	{"", "NN1004", "SKU-N4", "Delivered", "46272", "AE", "Glow Lab", "Beauty", "Skincare", "noon", "Glow Lab Mask", "1", "30"},
	{"18/01/2024 21:05", "NN1005", "SKU-N5", "Delivered", "99999", "OM", "Sun Co", "Eyewear", "Sunglasses", "noon instant", "Sun Co Aviator", "true", "210"},
}

var amazonHeader = []string{"purchase-date", "amazon-order-id", "sku", "item-status", "ship-country", "sales-channel", "product-name", "asin", "fulfillment-channel", "item-price", "quantity"}

// Each sheet of the Amazon workbook is one partner's export.
var amazonSheets = []struct {
	name string
	rows [][]string
}{
	{"Wishcare", [][]string{
		amazonHeader,
		{"2024-01-15T10:30:00+04:00", "402-1111111-0000001", "WC-ONION-100", "Shipped", "AE", "Amazon.ae", "WishCare Onion Hair Oil 100ml", "B0WISH0001", "Amazon", "49.00", "2"},
		{"2024-01-16T08:00:00+04:00", "402-1111111-0000002", "WC-SERUM-30", "Cancelled", "AE", "Amazon.ae", "Wishcare® Hair Growth Serum", "B0WISH0002", "Merchant", "75.00", "1"},
		// pasted second export: its header row repeats
		amazonHeader,
		{"2024-01-17T12:45:00+04:00", "402-1111111-0000003", "WC-ONION-100", "Unshipped", "AE", "Amazon.ae", "WishCare Onion Hair Oil 100ml", "B0WISH0001", "Amazon", "49.00", "1"},
	}},
	{"100 MPH", [][]string{
		amazonHeader,
		{"2024-01-18T09:15:00+03:00", "171-2222222-0000001", "CAT-SG-01", "Shipped", "SA", "Amazon.sa", "Caterpillar Polarized Sunglasses", "B0CAT00001", "Amazon", "", "1"},
		{"2024-01-19T17:20:00+03:00", "171-2222222-0000002", "MYST-01", "Shipped", "SA", "Amazon.sa", "Mystery Gadget", "B0MYST0001", "Merchant", "15.50", ""},
	}},
}

var revibeRows = [][]string{
	{"Last Update Date", "id", "SKU (Old: Order Status)", "Shipment Status", "Supplier", "Country", "Category", "Condition", "Model", "Variation: Color, Storage, Condition", "Actual Cost"},
	{"2024-01-20 14:00:00", "RV-3", "RV-IP13-128", "Shipped", "TechHub", "United Arab Emirates", "Smartphones", "Excellent", "iPhone 13", "Blue, 128GB, Excellent", "1450"},
	{"2024-01-20 09:30:00", "RV-2", "RV-IP12-64", "At quality check", "PhoneBay", "United Arab Emirates", "Smartphones", "Good", "iPhone 12", "Black, 64GB, Good", "980"},
	{"2024-01-19 18:10:00", "RV-1", "RV-IPAD-9", "Processing", "TechHub", "United Arab Emirates", "Tablets", "Fair", "iPad 9", "Silver, 64GB, Fair", "700"},
	{"2024-01-18 11:00:00", "RV-0", "RV-IP11-64", "Cancelled", "", "SA", "Smartphones", "Good", "iPhone 11", "White, 64GB, Good", "650"},
}

var catalogRows = [][]string{
	{"SKU", "Partner SKU", "Brand", "Category", "Sub-Category", "Product Titles"},
	{"SKU-N1", "NN1001", "Glow Lab", "Beauty", "Skincare", "Glow Lab Vitamin C Cream"},
	{"MYST-01", "B0MYST0001", "Gizmo", "Electronics", "Gadgets", "Gizmo Mystery Gadget"},
	{"WC-ONION-100", "B0WISH0001", "WishCare", "Hair Care", "Hair Oil", "WishCare Onion Hair Oil"},
}

// Write creates the sample exports and catalog in dir and returns their paths
func Write(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var paths []string
	for _, f := range []struct {
		name string
		rows [][]string
	}{
		{NoonFile, noonRows},
		{RevibeFile, revibeRows},
		{CatalogFile, catalogRows},
	} {
		path := filepath.Join(dir, f.name)
		if err := writeCSV(path, f.rows); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	path := filepath.Join(dir, AmazonFile)
	if err := writeAmazon(path); err != nil {
		return nil, err
	}
	return append(paths, path), nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeAmazon(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range amazonSheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", s.name, err)
		}
		for r, row := range s.rows {
			cells := make([]interface{}, len(row))
			for c, v := range row {
				cells[c] = v
			}
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(s.name, cell, &cells); err != nil {
				return fmt.Errorf("failed to write sheet %s: %w", s.name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
