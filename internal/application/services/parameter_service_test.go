package services

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fashion-assistant/internal/application/usecases"
	"fashion-assistant/internal/domain/valueobjects"
)

func TestParameterService_ParseFromRequest(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want *usecases.StylingParametersInput
	}{
		{
			name: "empty form uses defaults",
			form: url.Values{},
			want: &usecases.StylingParametersInput{
				Style: "Casual", Season: "Spring", Occasion: "None", Language: "en",
				UseVariations: false, VariationCount: 3,
			},
		},
		{
			name: "all fields",
			form: url.Values{
				"style":          {"Business Casual"},
				"season":         {"Winter"},
				"occasion":       {"Wedding"},
				"language":       {"FR"},
				"use_variations": {"on"},
				"num_variations": {"5"},
			},
			want: &usecases.StylingParametersInput{
				Style: "Business Casual", Season: "Winter", Occasion: "Wedding", Language: "fr",
				UseVariations: true, VariationCount: 5,
			},
		},
		{
			name: "unknown values fall back",
			form: url.Values{
				"style":          {"Gothic"},
				"language":       {"xx"},
				"num_variations": {"9"},
			},
			want: &usecases.StylingParametersInput{
				Style: "Casual", Season: "Spring", Occasion: "None", Language: "en",
				UseVariations: false, VariationCount: 3,
			},
		},
		{
			name: "None is a valid selection",
			form: url.Values{"style": {"None"}, "season": {"None"}, "num_variations": {"1"}},
			want: &usecases.StylingParametersInput{
				Style: "None", Season: "None", Occasion: "None", Language: "en",
				UseVariations: false, VariationCount: 1,
			},
		},
	}

	service := NewParameterService(valueobjects.DefaultCatalog())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/style", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			got := service.ParseFromRequest(req)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseFromRequest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
