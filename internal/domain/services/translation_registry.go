package services

import (
	"fmt"
	"slices"

	"fashion-assistant/internal/domain/repositories"
	"fashion-assistant/internal/domain/valueobjects"
)

// TranslatorPair translates a language into the pivot language and back.
type TranslatorPair struct {
	ToPivot   repositories.TranslationService
	FromPivot repositories.TranslationService
}

type TranslatorFactory func(source, target valueobjects.Language) (repositories.TranslationService, error)

// TranslationRegistry is built once at startup and only read afterwards.
type TranslationRegistry struct {
	pairs map[valueobjects.Language]TranslatorPair
}

func NewTranslationRegistry(languages []valueobjects.Language, factory TranslatorFactory) (*TranslationRegistry, error) {
	registry := &TranslationRegistry{
		pairs: make(map[valueobjects.Language]TranslatorPair),
	}

	for _, lang := range languages {
		if lang.IsPivot() {
			continue
		}
		if _, exists := registry.pairs[lang]; exists {
			continue
		}

		toPivot, err := factory(lang, valueobjects.PivotLanguage)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s-%s translator: %w", lang, valueobjects.PivotLanguage, err)
		}
		fromPivot, err := factory(valueobjects.PivotLanguage, lang)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s-%s translator: %w", valueobjects.PivotLanguage, lang, err)
		}

		registry.pairs[lang] = TranslatorPair{
			ToPivot:   toPivot,
			FromPivot: fromPivot,
		}
	}

	return registry, nil
}

// Lookup never reports a pair for the pivot language. A nil registry has no pairs.
func (r *TranslationRegistry) Lookup(lang valueobjects.Language) (TranslatorPair, bool) {
	if r == nil || lang.IsPivot() {
		return TranslatorPair{}, false
	}

	pair, ok := r.pairs[lang]
	if !ok || pair.ToPivot == nil || pair.FromPivot == nil {
		return TranslatorPair{}, false
	}
	return pair, true
}

func (r *TranslationRegistry) Languages() []valueobjects.Language {
	if r == nil {
		return nil
	}

	langs := make([]valueobjects.Language, 0, len(r.pairs))
	for lang := range r.pairs {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}
