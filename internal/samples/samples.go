// Package samples bundles three demo vendor quotations used by the CLI
// and the analyze-samples endpoint.
package samples

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/nexus-group/quote-intel/internal/model"
)

//go:embed vendors.json
var vendorsJSON []byte

// SampleVendor pairs a demo quotation with its market context.
type SampleVendor struct {
	ID        string                    `json:"id"`
	Quotation model.Quotation           `json:"raw_document"`
	Market    *model.MarketIntelligence `json:"market_intelligence,omitempty"`
}

type bundle struct {
	Vendors []SampleVendor `json:"vendors"`
}

// Vendors returns the bundled demo vendors.
func Vendors() ([]SampleVendor, error) {
	return decode(vendorsJSON)
}

// LoadFromFile reads sample vendors from a JSON file in the bundled
// fixture format, for demos that swap in their own data.
func LoadFromFile(path string) ([]SampleVendor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "samples: read vendors fixture")
	}
	return decode(data)
}

func decode(data []byte) ([]SampleVendor, error) {
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, eris.Wrap(err, "samples: unmarshal vendors fixture")
	}
	return b.Vendors, nil
}

// Quotations extracts just the quotations, in bundle order.
func Quotations(vendors []SampleVendor) []model.Quotation {
	out := make([]model.Quotation, len(vendors))
	for i, v := range vendors {
		out[i] = v.Quotation
	}
	return out
}
