package entities

import "strings"

type TextResult struct {
	text string
}

// NewTextResult trims surrounding whitespace the models tend to emit.
func NewTextResult(text string) *TextResult {
	return &TextResult{
		text: strings.TrimSpace(text),
	}
}

func (r *TextResult) Text() string {
	return r.text
}

func (r *TextResult) IsEmpty() bool {
	return r.text == ""
}
