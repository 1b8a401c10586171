package clean

import (
	"testing"

	"github.com/matthieukhl/salesclean/internal/models"
)

func TestPartnerClassificationIsTotal(t *testing.T) {
	inputs := []string{"", "   ", "46272", "46272.0", " 181587 ", "47461.00", "0", "Wishcare", "wishcare", "100 MPH", "100_Miles", "🙂", "NaN"}
	tables := map[string]PartnerTable{"noon": noonPartners, "amazon": amazonPartners, "revibe": revibePartners}

	for name, table := range tables {
		for _, in := range inputs {
			got := table.Classify(in)
			if got == "" {
				t.Fatalf("%s %q: empty label", name, in)
			}
			if got != models.NullLabel && got[:len(table.Prefix)] != table.Prefix {
				t.Fatalf("%s %q: got=%q", name, in, got)
			}
		}
	}

	tests := []struct {
		table PartnerTable
		in    string
		want  string
	}{
		{noonPartners, "46272.0", "Nub-Partner 46272"},
		{noonPartners, "181587", "Nub-Partner 181587"},
		{noonPartners, "12", models.NullLabel},
		{amazonPartners, "100 MPH", "Nub-Partner 100 MPH"},
		{amazonPartners, "Other", models.NullLabel},
		{revibePartners, "TechHub", "Revibe TechHub"},
		{revibePartners, "", models.NullLabel},
	}
	for _, tt := range tests {
		if got := tt.table.Classify(tt.in); got != tt.want {
			t.Fatalf("Classify(%q): got=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestBrandRules(t *testing.T) {
	tests := []struct {
		title    string
		brand    string
		category string
	}{
		{"Caterpillar Polarized Sunglasses", "CAT", "Eyewear"},
		{"CAT Men's Aviator", "CAT", "Eyewear"},
		{"Catalog Holder", "", ""},
		{"The White Willow Memory Foam Pillow", "The White Willow", "The White Willow"},
		{"Pinkish Towel", "", ""},
		{"The Pink Stuff Miracle Paste", "The Pink Stuff", "The Pink Stuff"},
		{"Wishcare® Hair Serum", "WishCare", "WishCare"},
		{"O'Neill Sunglasses", "O'NEILL", "Eyewear"},
		{"My Carry Potty Travel Seat", "My Carry Potty", "My Carry Potty"},
		{"Hismile v34 Colour Corrector", "Hismile", ""},
		{"Radley London (Tote)", "RADLEY", "Eyewear"},
		// Both brands named: earlier rule wins
		{"RADLEY case for CAT glasses", "CAT", "Eyewear"},
	}
	for _, tt := range tests {
		rule, ok := amazonBrands.Match(tt.title)
		if tt.brand == "" {
			if ok {
				t.Fatalf("%q: matched %q, want no match", tt.title, rule.Brand)
			}
			continue
		}
		if !ok || rule.Brand != tt.brand || rule.Category != tt.category {
			t.Fatalf("%q: got=(%q,%q,%v) want=(%q,%q)", tt.title, rule.Brand, rule.Category, ok, tt.brand, tt.category)
		}
	}
}

func TestSubstitution(t *testing.T) {
	if got := countries.Apply("AE"); got != "UAE" {
		t.Fatalf("exact: got=%q", got)
	}
	if got := countries.Apply("united arab emirates"); got != "UAE" {
		t.Fatalf("case-insensitive: got=%q", got)
	}
	if got := countries.Apply(" Egypt "); got != "Egypt" {
		t.Fatalf("passthrough: got=%q", got)
	}
	var none Substitution
	if got := none.Apply("x"); got != "x" {
		t.Fatalf("nil table: got=%q", got)
	}

	clash := Substitution{"ab": "lower", "AB": "upper", "aB": "mixed"}
	for i := 0; i < 50; i++ {
		if got := clash.Apply("Ab"); got != "upper" {
			t.Fatalf("case clash run %d: got=%q want=%q", i, got, "upper")
		}
	}
	if got := clash.Apply("ab"); got != "lower" {
		t.Fatalf("exact over folded: got=%q", got)
	}
}
