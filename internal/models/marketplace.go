package models

import (
	"fmt"
	"strings"
)

// Marketplace identifies the sales channel an export file came from
type Marketplace string

const (
	Noon    Marketplace = "Noon"
	Amazon  Marketplace = "Amazon"
	Revibe  Marketplace = "Revibe"
	Talabat Marketplace = "Talabat"
	Careem  Marketplace = "Careem"
)

// Marketplaces lists every supported marketplace in display order
var Marketplaces = []Marketplace{Noon, Amazon, Revibe, Talabat, Careem}

// ParseMarketplace resolves a user supplied name, ignoring case and surrounding spaces
func ParseMarketplace(name string) (Marketplace, error) {
	name = strings.TrimSpace(name)
	for _, m := range Marketplaces {
		if strings.EqualFold(string(m), name) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown marketplace %q (expected one of %s)", name, marketplaceNames())
}

// OutputName returns the deterministic file name of the cleaned workbook
func (m Marketplace) OutputName() string {
	return "Cleaned_" + string(m) + "_Data.xlsx"
}

func marketplaceNames() string {
	names := make([]string, len(Marketplaces))
	for i, m := range Marketplaces {
		names[i] = string(m)
	}
	return strings.Join(names, "|")
}

// Canonical status values produced by the vocabulary tables
const (
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// Fulfillment codes
const (
	FulfillmentAmazon  = "FBA"
	FulfillmentNoon    = "FBN"
	FulfillmentPartner = "FBP"
	FulfillmentRevibe  = "FBR"
)

// NullLabel is written where a closed classification has no entry
const NullLabel = "Null"
