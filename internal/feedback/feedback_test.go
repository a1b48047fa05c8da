package feedback

import "testing"

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Category
	}{
		{"exact bugs", "Bugs", CategoryBugs},
		{"exact feature requests", "FeatureRequests", CategoryFeatureRequests},
		{"exact billing", "Billing", CategoryBilling},
		{"leading whitespace", "  Billing", CategoryBilling},
		{"trailing newline", "Bugs\n", CategoryBugs},
		{"empty", "", CategoryBugs},
		{"whitespace only", "   ", CategoryBugs},
		{"unknown label", "Praise", CategoryBugs},
		{"case drift", "bugs", CategoryBugs},
		{"case drift billing", "BILLING", CategoryBugs},
		{"extra words", "Category: Billing", CategoryBugs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeCategory(tt.raw); got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
