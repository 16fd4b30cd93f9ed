package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nexus-group/quote-intel/internal/model"
)

func TestEvaluateMetadata(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC)
	items := []model.LineItem{{Description: "unit", Quantity: 1, UnitPrice: 100}}

	tests := []struct {
		name        string
		quote       model.Quotation
		wantExpired bool
		wantFlags   []string
	}{
		{
			name:        "valid quote carries no flags",
			quote:       model.Quotation{ValidUntil: "2026-09-30", LineItems: items},
			wantExpired: false,
			wantFlags:   nil,
		},
		{
			name:        "expired quote is flagged",
			quote:       model.Quotation{ValidUntil: "2026-08-20", LineItems: items},
			wantExpired: true,
			wantFlags:   []string{"quote_expired"},
		},
		{
			name:        "valid-until day itself still counts",
			quote:       model.Quotation{ValidUntil: "2026-08-24", LineItems: items},
			wantExpired: false,
			wantFlags:   nil,
		},
		{
			name:        "unreadable date is flagged not expired",
			quote:       model.Quotation{ValidUntil: "next quarter", LineItems: items},
			wantExpired: false,
			wantFlags:   []string{"unreadable_valid_until"},
		},
		{
			name:        "missing date is fine",
			quote:       model.Quotation{LineItems: items},
			wantExpired: false,
			wantFlags:   nil,
		},
		{
			name:        "no line items",
			quote:       model.Quotation{ValidUntil: "2026-09-30"},
			wantExpired: false,
			wantFlags:   []string{"no_line_items"},
		},
		{
			name: "zero-priced line items",
			quote: model.Quotation{
				LineItems: []model.LineItem{
					{Description: "freebie", Quantity: 2, UnitPrice: 0},
					{Description: "unit", Quantity: 1, UnitPrice: 100},
				},
			},
			wantExpired: false,
			wantFlags:   []string{"zero_priced_line_items"},
		},
		{
			name: "negative line values",
			quote: model.Quotation{
				LineItems: []model.LineItem{
					{Description: "credit", Quantity: -1, UnitPrice: 100},
				},
			},
			wantExpired: false,
			wantFlags:   []string{"negative_line_values"},
		},
		{
			name:        "expired and structurally empty stack up",
			quote:       model.Quotation{ValidUntil: "2026-01-15"},
			wantExpired: true,
			wantFlags:   []string{"quote_expired", "no_line_items"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := EvaluateMetadata(tt.quote, now)

			assert.Equal(t, tt.quote.ValidUntil, got.ValidUntil)
			assert.Equal(t, tt.wantExpired, got.Expired)
			assert.Equal(t, tt.wantFlags, got.IntegrityFlags)
		})
	}
}
