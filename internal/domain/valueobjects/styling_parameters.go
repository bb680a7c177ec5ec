package valueobjects

import (
	"fmt"
	"slices"
	"strings"
)

type OutfitStyle string
type Season string
type Occasion string
type Language string

// None is shared by every selector and means "no preference".
const None = "None"

const (
	StyleNone           OutfitStyle = None
	StyleCasual         OutfitStyle = "Casual"
	StyleFormal         OutfitStyle = "Formal"
	StyleStreetwear     OutfitStyle = "Streetwear"
	StyleBoho           OutfitStyle = "Boho"
	StyleBusinessCasual OutfitStyle = "Business Casual"
)

const (
	SeasonNone   Season = None
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
	SeasonWinter Season = "Winter"
)

const (
	OccasionNone            Occasion = None
	OccasionBusinessMeeting Occasion = "Business Meeting"
	OccasionDateNight       Occasion = "Date Night"
	OccasionWedding         Occasion = "Wedding"
	OccasionGym             Occasion = "Gym"
)

// PivotLanguage is the language every model is prompted in.
const PivotLanguage Language = "en"

const (
	MinVariations     = 1
	MaxVariations     = 5
	DefaultVariations = 3
)

func (s OutfitStyle) IsNone() bool {
	return isNone(string(s))
}

func (s Season) IsNone() bool {
	return isNone(string(s))
}

func (o Occasion) IsNone() bool {
	return isNone(string(o))
}

func (l Language) IsPivot() bool {
	return l == "" || l == PivotLanguage
}

func isNone(v string) bool {
	return v == "" || strings.EqualFold(v, None)
}

type StylingParameters struct {
	style          OutfitStyle
	season         Season
	occasion       Occasion
	language       Language
	useVariations  bool
	variationCount int
}

func NewStylingParameters(
	style OutfitStyle,
	season Season,
	occasion Occasion,
	language Language,
	useVariations bool,
	variationCount int,
) (*StylingParameters, error) {
	if variationCount < MinVariations || variationCount > MaxVariations {
		return nil, fmt.Errorf("variationCount must be between %d and %d, got %d", MinVariations, MaxVariations, variationCount)
	}

	if language == "" {
		language = PivotLanguage
	}

	return &StylingParameters{
		style:          style,
		season:         season,
		occasion:       occasion,
		language:       language,
		useVariations:  useVariations,
		variationCount: variationCount,
	}, nil
}

func DefaultStylingParameters() *StylingParameters {
	params, _ := NewStylingParameters(
		StyleCasual,
		SeasonSpring,
		OccasionNone,
		PivotLanguage,
		false,
		DefaultVariations,
	)
	return params
}

func (p *StylingParameters) Style() OutfitStyle {
	return p.style
}

func (p *StylingParameters) Season() Season {
	return p.season
}

func (p *StylingParameters) Occasion() Occasion {
	return p.occasion
}

func (p *StylingParameters) Language() Language {
	return p.language
}

func (p *StylingParameters) UseVariations() bool {
	return p.useVariations
}

func (p *StylingParameters) VariationCount() int {
	return p.variationCount
}

// Catalog lists the selector values offered by the form.
type Catalog struct {
	Styles    []OutfitStyle `yaml:"styles" json:"styles"`
	Seasons   []Season      `yaml:"seasons" json:"seasons"`
	Occasions []Occasion    `yaml:"occasions" json:"occasions"`
	Languages []Language    `yaml:"languages" json:"languages"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		Styles:    []OutfitStyle{StyleNone, StyleCasual, StyleFormal, StyleStreetwear, StyleBoho, StyleBusinessCasual},
		Seasons:   []Season{SeasonNone, SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter},
		Occasions: []Occasion{OccasionNone, OccasionBusinessMeeting, OccasionDateNight, OccasionWedding, OccasionGym},
		Languages: []Language{PivotLanguage, "es", "fr", "de"},
	}
}

func (c Catalog) HasStyle(s OutfitStyle) bool {
	return slices.Contains(c.Styles, s)
}

func (c Catalog) HasSeason(s Season) bool {
	return slices.Contains(c.Seasons, s)
}

func (c Catalog) HasOccasion(o Occasion) bool {
	return slices.Contains(c.Occasions, o)
}

func (c Catalog) HasLanguage(l Language) bool {
	return slices.Contains(c.Languages, l)
}

// NonPivotLanguages returns the catalog languages that need a translator pair.
func (c Catalog) NonPivotLanguages() []Language {
	var out []Language
	for _, l := range c.Languages {
		if !l.IsPivot() {
			out = append(out, l)
		}
	}
	return out
}
