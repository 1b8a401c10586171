package clean

import (
	"slices"
	"strings"

	"github.com/matthieukhl/salesclean/internal/models"
)

// Substitution maps source vocabulary onto canonical values. Values without an entry
// pass through unchanged.
type Substitution map[string]string

// Apply returns the canonical value for v. Exact keys win; otherwise keys are
// compared case-insensitively in sorted order, so the first matching key decides.
func (s Substitution) Apply(v string) string {
	v = strings.TrimSpace(v)
	if out, ok := s[v]; ok {
		return out
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if strings.EqualFold(k, v) {
			return s[k]
		}
	}
	return v
}

// StatusSet is a set of status values compared case-insensitively
type StatusSet []string

func (s StatusSet) Has(status string) bool {
	status = strings.TrimSpace(status)
	for _, v := range s {
		if strings.EqualFold(v, status) {
			return true
		}
	}
	return false
}

// with returns a copy of s extended by extra
func (s StatusSet) with(extra ...string) StatusSet {
	out := make(StatusSet, 0, len(s)+len(extra))
	out = append(out, s...)
	return append(out, extra...)
}

// Statuses that are not final and never reach the output
var baseExcluded = StatusSet{
	"Unshipped", "Pending", "Undelivered", "Confirmed", "Created", "Exported", "Fulfilling",
}

var countries = Substitution{
	"SA":                   "Saudi",
	"AE":                   "UAE",
	"BH":                   "Bahrain",
	"KW":                   "Kuwait",
	"OM":                   "Oman",
	"United Arab Emirates": "UAE",
}

var noonStatus = Substitution{
	"Shipped": models.StatusDelivered,
	"CIR":     models.StatusCancelled,
}

var amazonStatus = Substitution{
	"Shipped": models.StatusDelivered,
}

var revibeStatus = Substitution{
	"Shipped":          models.StatusDelivered,
	"At quality check": models.StatusDelivered,
	"Refused delivery": models.StatusDelivered,
}

var noonChannels = Substitution{
	"noon":         "Noon",
	"noon rocket":  "Noon",
	"noon instant": "Noon",
}

var amazonChannels = Substitution{
	"Amazon.ae": "Amazon",
	"Amazon.sa": "Amazon",
}

var noonFulfillment = Substitution{
	"1":     models.FulfillmentNoon,
	"1.0":   models.FulfillmentNoon,
	"true":  models.FulfillmentNoon,
	"yes":   models.FulfillmentNoon,
	"0":     models.FulfillmentPartner,
	"0.0":   models.FulfillmentPartner,
	"false": models.FulfillmentPartner,
	"no":    models.FulfillmentPartner,
}

var amazonFulfillment = Substitution{
	"Amazon":   models.FulfillmentAmazon,
	"Merchant": models.FulfillmentPartner,
}
