package clean

import (
	"strings"
)

// BrandRule ties a set of title keywords to one brand and its category
type BrandRule struct {
	Keywords    []string `json:"keywords"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
}

// BrandRules is an ordered rule list; the first rule with a matching keyword wins
type BrandRules []BrandRule

// Match finds the brand for a product title. Each keyword is checked on its own:
// single words must equal a whole word of the title, multi-word keywords must
// appear as a substring.
func (rules BrandRules) Match(title string) (BrandRule, bool) {
	words := titleWords(title)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if matchKeyword(title, words, kw) {
				return rule, true
			}
		}
	}
	return BrandRule{}, false
}

func matchKeyword(title string, words map[string]bool, keyword string) bool {
	if keyword == "" {
		return false
	}
	if strings.ContainsAny(keyword, " \t") {
		return strings.Contains(title, keyword)
	}
	return words[keyword]
}

// titleWords splits a title on whitespace, trimming punctuation stuck to each word
func titleWords(title string) map[string]bool {
	fields := strings.Fields(title)
	words := make(map[string]bool, len(fields)*2)
	for _, f := range fields {
		words[f] = true
		if w := strings.Trim(f, `,.;:!?()[]{}"|/-`); w != "" {
			words[w] = true
		}
	}
	return words
}

// Brands recognised in Amazon product names. Order matters: a title naming two
// brands resolves to the earlier rule.
var amazonBrands = BrandRules{
	{Keywords: []string{"CAT", "Caterpillar", "Caterpiller"}, Brand: "CAT", Category: "Eyewear", SubCategory: "Sunglasses"},
	{Keywords: []string{"Willow"}, Brand: "The White Willow", Category: "The White Willow", SubCategory: "The White Willow"},
	{Keywords: []string{"Pink"}, Brand: "The Pink Stuff", Category: "The Pink Stuff", SubCategory: "The Pink Stuff"},
	{Keywords: []string{"WishCare", "Wishcare", "WishCare®", "Wishcare®"}, Brand: "WishCare", Category: "WishCare", SubCategory: "WishCare"},
	{Keywords: []string{"O'Neill", "O'NEILL"}, Brand: "O'NEILL", Category: "Eyewear", SubCategory: "Sunglasses"},
	{Keywords: []string{"Carry", "Potty"}, Brand: "My Carry Potty", Category: "My Carry Potty", SubCategory: "My Carry Potty"},
	{Keywords: []string{"Superdry"}, Brand: "Superdry", Category: "Eyewear", SubCategory: "Sunglasses"},
	{Keywords: []string{"Botaniq"}, Brand: "Botaniq", Category: "Eyewear", SubCategory: "Sunglasses"},
	// Category left blank so the reference catalog can supply it.
	{Keywords: []string{"Everteen"}, Brand: "Everteen"},
	{Keywords: []string{"Hismile"}, Brand: "Hismile"},
	{Keywords: []string{"RADLEY", "Radley"}, Brand: "RADLEY", Category: "Eyewear", SubCategory: "Sunglasses"},
}
