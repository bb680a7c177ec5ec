package valueobjects

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewStylingParameters(t *testing.T) {
	tests := []struct {
		name           string
		variationCount int
		wantErr        bool
	}{
		{
			name:           "valid parameters",
			variationCount: 3,
			wantErr:        false,
		},
		{
			name:           "minimum count",
			variationCount: MinVariations,
			wantErr:        false,
		},
		{
			name:           "maximum count",
			variationCount: MaxVariations,
			wantErr:        false,
		},
		{
			name:           "variationCount too low",
			variationCount: 0,
			wantErr:        true,
		},
		{
			name:           "variationCount too high",
			variationCount: 6,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStylingParameters(
				StyleFormal,
				SeasonWinter,
				OccasionNone,
				PivotLanguage,
				false,
				tt.variationCount,
			)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewStylingParameters() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewStylingParameters_EmptyLanguageIsPivot(t *testing.T) {
	params, err := NewStylingParameters(StyleCasual, SeasonSpring, OccasionNone, "", false, 1)
	if err != nil {
		t.Fatalf("NewStylingParameters() error = %v", err)
	}
	if params.Language() != PivotLanguage {
		t.Errorf("Expected pivot language, got %q", params.Language())
	}
}

func TestDefaultStylingParameters(t *testing.T) {
	params := DefaultStylingParameters()

	if params.Style() != StyleCasual {
		t.Errorf("Expected Style Casual, got %v", params.Style())
	}

	if params.Season() != SeasonSpring {
		t.Errorf("Expected Season Spring, got %v", params.Season())
	}

	if params.Occasion() != OccasionNone {
		t.Errorf("Expected Occasion None, got %v", params.Occasion())
	}

	if params.VariationCount() != DefaultVariations {
		t.Errorf("Expected VariationCount %d, got %d", DefaultVariations, params.VariationCount())
	}

	if params.UseVariations() {
		t.Errorf("Expected UseVariations false")
	}
}

func TestSelectorIsNone(t *testing.T) {
	if !StyleNone.IsNone() || !OutfitStyle("none").IsNone() || !OutfitStyle("").IsNone() {
		t.Errorf("Expected None style variants to be none")
	}
	if StyleFormal.IsNone() {
		t.Errorf("Formal should not be none")
	}
	if !SeasonNone.IsNone() || SeasonWinter.IsNone() {
		t.Errorf("Season IsNone mismatch")
	}
	if !OccasionNone.IsNone() || OccasionWedding.IsNone() {
		t.Errorf("Occasion IsNone mismatch")
	}
}

func TestCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	if !catalog.HasStyle(StyleBusinessCasual) {
		t.Errorf("Expected Business Casual in catalog")
	}
	if catalog.HasSeason("Monsoon") {
		t.Errorf("Unexpected season in catalog")
	}
	if !catalog.HasOccasion(OccasionDateNight) {
		t.Errorf("Expected Date Night in catalog")
	}
	if !catalog.HasLanguage("de") {
		t.Errorf("Expected de in catalog")
	}

	want := []Language{"es", "fr", "de"}
	if diff := cmp.Diff(want, catalog.NonPivotLanguages()); diff != "" {
		t.Errorf("NonPivotLanguages() mismatch (-want +got):\n%s", diff)
	}
}
