package services

import (
	"strings"
	"testing"

	"fashion-assistant/internal/domain/valueobjects"
)

func TestBuildStylingPrompt(t *testing.T) {
	tests := []struct {
		name     string
		style    valueobjects.OutfitStyle
		season   valueobjects.Season
		occasion valueobjects.Occasion
		want     string
	}{
		{
			name:     "all selectors",
			style:    valueobjects.StyleBusinessCasual,
			season:   valueobjects.SeasonFall,
			occasion: valueobjects.OccasionDateNight,
			want:     "looking for business casual outfit and suitable for fall and tailored for date night. ",
		},
		{
			name:     "style only",
			style:    valueobjects.StyleFormal,
			season:   valueobjects.SeasonNone,
			occasion: valueobjects.OccasionNone,
			want:     "looking for formal outfit. ",
		},
		{
			name:     "no selectors",
			style:    valueobjects.StyleNone,
			season:   valueobjects.SeasonNone,
			occasion: valueobjects.OccasionNone,
			want:     "looking for a personalized outfit. ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := mustParams(t, tt.style, tt.season, tt.occasion, "en", false, 1)
			prompt := BuildStylingPrompt("red scarf", params)

			if !strings.HasPrefix(prompt, "You are a professional stylist. ") {
				t.Errorf("Prompt missing stylist preamble: %q", prompt)
			}
			if !strings.Contains(prompt, tt.want) {
				t.Errorf("Prompt %q does not contain %q", prompt, tt.want)
			}
			if !strings.Contains(prompt, "Their input is: 'red scarf'. ") {
				t.Errorf("Prompt missing user input: %q", prompt)
			}
			if !strings.HasSuffix(prompt, "Format the response in bullet points for clarity.") {
				t.Errorf("Prompt missing format instruction: %q", prompt)
			}
		})
	}
}

func TestCombineInput(t *testing.T) {
	tests := []struct {
		text, caption, want string
	}{
		{"summer party", "a white linen shirt", "summer party a white linen shirt"},
		{"summer party", "", "summer party"},
		{"  summer party ", "", "summer party"},
	}

	for _, tt := range tests {
		if got := CombineInput(tt.text, tt.caption); got != tt.want {
			t.Errorf("CombineInput(%q, %q) = %q, want %q", tt.text, tt.caption, got, tt.want)
		}
	}
}

func TestTruncateAdvice(t *testing.T) {
	short := "- Add a belt"
	if got := TruncateAdvice(short); got != short {
		t.Errorf("Short advice changed: %q", got)
	}

	long := strings.Repeat("ü", MaxAdviceLength*2)
	got := TruncateAdvice(long)
	if n := len([]rune(got)); n != MaxAdviceLength {
		t.Errorf("Truncated advice has %d characters, want %d", n, MaxAdviceLength)
	}
	if got != strings.Repeat("ü", MaxAdviceLength) {
		t.Errorf("Truncation should cut on rune boundaries")
	}
}
