package samples

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nexus-group/quote-intel/internal/intake"
	"github.com/nexus-group/quote-intel/internal/model"
)

func TestVendors(t *testing.T) {
	vendors, err := Vendors()
	if err != nil {
		t.Fatalf("Vendors() error: %v", err)
	}
	if len(vendors) != 3 {
		t.Fatalf("expected 3 bundled vendors, got %d", len(vendors))
	}

	seen := map[string]bool{}
	for _, v := range vendors {
		if v.ID == "" {
			t.Error("bundled vendor missing id")
		}
		if seen[v.ID] {
			t.Errorf("duplicate vendor id %s", v.ID)
		}
		seen[v.ID] = true

		if v.Quotation.VendorName == "" {
			t.Errorf("vendor %s missing vendor_name", v.ID)
		}
		if len(v.Quotation.LineItems) == 0 {
			t.Errorf("vendor %s has no line items", v.ID)
		}
		if v.Market == nil {
			t.Errorf("vendor %s missing market intelligence", v.ID)
		}
	}
}

// TestVendors_CoverRiskSpread keeps the demo data demo-worthy: the trio
// must span all three risk levels so comparisons show contrast.
func TestVendors_CoverRiskSpread(t *testing.T) {
	vendors, err := Vendors()
	if err != nil {
		t.Fatalf("Vendors() error: %v", err)
	}

	norm := intake.NewNormalizer(nil)
	levels := map[model.RiskLevel]bool{}
	currencies := map[string]bool{}
	for _, v := range vendors {
		n := norm.Normalize(v.Quotation)
		levels[n.Risk.RiskLevel] = true
		currencies[n.Commercial.Currency] = true

		if n.Record.TotalLandedCost <= 0 {
			t.Errorf("vendor %s has non-positive landed cost", v.ID)
		}
		if n.Record.DeliveryDays >= intake.UnparseableDeliveryDays {
			t.Errorf("vendor %s has unparseable delivery estimate", v.ID)
		}
	}

	for _, want := range []model.RiskLevel{model.RiskLow, model.RiskModerate, model.RiskHigh} {
		if !levels[want] {
			t.Errorf("bundled vendors do not include a %s risk sample", want)
		}
	}
	if len(currencies) < 2 {
		t.Error("bundled vendors should span at least two currencies")
	}
}

func TestQuotations(t *testing.T) {
	vendors, err := Vendors()
	if err != nil {
		t.Fatalf("Vendors() error: %v", err)
	}

	quotes := Quotations(vendors)
	if len(quotes) != len(vendors) {
		t.Fatalf("expected %d quotations, got %d", len(vendors), len(quotes))
	}
	for i, q := range quotes {
		if q.VendorName != vendors[i].Quotation.VendorName {
			t.Errorf("quotation %d out of order: %s", i, q.VendorName)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	vendors := []SampleVendor{
		{ID: "v1", Quotation: model.Quotation{VendorName: "Acme Corp"}},
		{ID: "v2", Quotation: model.Quotation{VendorName: "Globex"}},
	}
	data, err := json.Marshal(bundle{Vendors: vendors})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "vendors.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 vendors, got %d", len(got))
	}
	if got[0].Quotation.VendorName != "Acme Corp" {
		t.Errorf("expected Acme Corp, got %s", got[0].Quotation.VendorName)
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/vendors.json")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFile_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromFile(path)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
