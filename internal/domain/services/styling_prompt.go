package services

import (
	"fmt"
	"strings"

	"fashion-assistant/internal/domain/valueobjects"
)

// MaxAdviceLength is the number of characters kept from the generated advice.
const MaxAdviceLength = 175

func BuildStylingPrompt(input string, params *valueobjects.StylingParameters) string {
	var contextParts []string

	if !params.Style().IsNone() {
		contextParts = append(contextParts, fmt.Sprintf("%s outfit", strings.ToLower(string(params.Style()))))
	}
	if !params.Season().IsNone() {
		contextParts = append(contextParts, fmt.Sprintf("suitable for %s", strings.ToLower(string(params.Season()))))
	}
	if !params.Occasion().IsNone() {
		contextParts = append(contextParts, fmt.Sprintf("tailored for %s", strings.ToLower(string(params.Occasion()))))
	}

	contextDescription := strings.Join(contextParts, " and ")
	if contextDescription == "" {
		contextDescription = "a personalized outfit"
	}

	var sb strings.Builder
	sb.WriteString("You are a professional stylist. ")
	sb.WriteString("The user is looking for " + contextDescription + ". ")
	sb.WriteString("Their input is: '" + input + "'. ")
	sb.WriteString("Provide actionable fashion advice including clothing pairings, accessories, and color themes. ")
	sb.WriteString("Format the response in bullet points for clarity.")

	return sb.String()
}

// CombineInput joins the user's text with the image caption, if any.
func CombineInput(text, caption string) string {
	return strings.TrimSpace(text + " " + caption)
}

// TruncateAdvice cuts on rune boundaries so multi-byte text stays valid.
func TruncateAdvice(advice string) string {
	runes := []rune(advice)
	if len(runes) <= MaxAdviceLength {
		return advice
	}
	return string(runes[:MaxAdviceLength])
}
