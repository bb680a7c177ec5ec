package services

import (
	"net/http"
	"strconv"
	"strings"

	"fashion-assistant/internal/application/usecases"
	"fashion-assistant/internal/domain/valueobjects"
)

// ParameterService reads the form selectors. Values outside the catalog
// fall back to the form defaults.
type ParameterService struct {
	catalog valueobjects.Catalog
}

func NewParameterService(catalog valueobjects.Catalog) *ParameterService {
	return &ParameterService{catalog: catalog}
}

func (s *ParameterService) Catalog() valueobjects.Catalog {
	return s.catalog
}

func (s *ParameterService) ParseFromRequest(r *http.Request) *usecases.StylingParametersInput {
	defaults := valueobjects.DefaultStylingParameters()

	params := &usecases.StylingParametersInput{
		Style:          string(defaults.Style()),
		Season:         string(defaults.Season()),
		Occasion:       string(defaults.Occasion()),
		Language:       string(defaults.Language()),
		UseVariations:  s.getBool(r, "use_variations", false),
		VariationCount: s.getInt(r, "num_variations", valueobjects.DefaultVariations, valueobjects.MinVariations, valueobjects.MaxVariations),
	}

	if style := valueobjects.OutfitStyle(s.getString(r, "style", "")); s.catalog.HasStyle(style) {
		params.Style = string(style)
	}
	if season := valueobjects.Season(s.getString(r, "season", "")); s.catalog.HasSeason(season) {
		params.Season = string(season)
	}
	if occasion := valueobjects.Occasion(s.getString(r, "occasion", "")); s.catalog.HasOccasion(occasion) {
		params.Occasion = string(occasion)
	}
	if lang := valueobjects.Language(strings.ToLower(s.getString(r, "language", ""))); s.catalog.HasLanguage(lang) {
		params.Language = string(lang)
	}

	return params
}

func (s *ParameterService) getBool(r *http.Request, key string, defaultValue bool) bool {
	value := r.FormValue(key)
	if value == "" {
		return defaultValue
	}
	// チェックボックスは "on" を送る
	return value == "true" || value == "on" || value == "1"
}

func (s *ParameterService) getInt(r *http.Request, key string, defaultValue, min, max int) int {
	value := r.FormValue(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if intVal < min || intVal > max {
		return defaultValue
	}

	return intVal
}

func (s *ParameterService) getString(r *http.Request, key, defaultValue string) string {
	value := strings.TrimSpace(r.FormValue(key))
	if value == "" {
		return defaultValue
	}
	return value
}
