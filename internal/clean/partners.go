package clean

import (
	"strings"

	"github.com/matthieukhl/salesclean/internal/models"
)

// PartnerTable maps a marketplace partner identifier to its Nub Partner label.
// Closed tables only know the listed ids; everything else is "Null".
type PartnerTable struct {
	Prefix string
	Known  []string
	// Open tables label every non-blank id with Prefix.
	Open bool
}

// Classify is total: it returns a label for every input
func (p PartnerTable) Classify(id string) string {
	id = normalizeID(id)
	if id == "" {
		return models.NullLabel
	}
	if p.Open {
		return p.Prefix + id
	}
	for _, k := range p.Known {
		if k == id {
			return p.Prefix + id
		}
	}
	return models.NullLabel
}

var noonPartners = PartnerTable{
	Prefix: "Nub-Partner ",
	Known:  []string{"46272", "181587", "47461"},
}

var amazonPartners = PartnerTable{
	Prefix: "Nub-Partner ",
	Known:  []string{"Wishcare", "100 MPH", "100_Miles"},
}

var revibePartners = PartnerTable{
	Prefix: "Revibe ",
	Open:   true,
}

// normalizeID trims an identifier and undoes the float coercion spreadsheets apply
// to numeric ids ("46272.0" -> "46272").
func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if head, ok := strings.CutSuffix(id, ".0"); ok && head != "" && strings.Trim(head, "0123456789") == "" {
		return head
	}
	return id
}
