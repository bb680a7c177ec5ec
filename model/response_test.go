package model

import (
	"encoding/json"
	"strings"
	"testing"
)

const predictResponseJSON = `{
  "predictions": [
    {
      "mimeType": "image/png",
      "bytesBase64Encoded": "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChAI9jz22jQAAAABJRU5ErkJggg=="
    },
    {
      "raiFilteredReason": "56562880"
    }
  ]
}`

func TestPredictResponseParsing(t *testing.T) {
	var response PredictResponse
	if err := json.Unmarshal([]byte(predictResponseJSON), &response); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(response.Predictions) != 2 {
		t.Fatalf("Expected 2 predictions, got %d", len(response.Predictions))
	}

	first := response.Predictions[0]
	if first.MimeType != "image/png" {
		t.Errorf("Expected MimeType to be image/png, got %s", first.MimeType)
	}
	if first.BytesBase64Encoded == "" {
		t.Error("Expected BytesBase64Encoded to be set")
	}

	filtered := response.Predictions[1]
	if filtered.BytesBase64Encoded != "" || filtered.RaiFilteredReason == "" {
		t.Errorf("Expected a filtered prediction, got %+v", filtered)
	}
}

func TestPredictRequestOmitsEmptyFields(t *testing.T) {
	request := PredictRequest{
		Instances:  []PredictInstance{{Prompt: "a linen suit"}},
		Parameters: PredictParameters{SampleCount: 1},
	}

	data, err := json.Marshal(request)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}

	body := string(data)
	for _, field := range []string{`"image"`, `"editConfig"`, `"aspectRatio"`} {
		if strings.Contains(body, field) {
			t.Errorf("Expected %s to be omitted, got %s", field, body)
		}
	}
	if !strings.Contains(body, `"sampleCount":1`) {
		t.Errorf("Expected sampleCount in body, got %s", body)
	}
}
