package model

// PredictResponse is the body returned by a Vertex AI publisher model :predict call.
type PredictResponse struct {
	Predictions []Prediction `json:"predictions"`
}

type Prediction struct {
	MimeType           string `json:"mimeType"`
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	// セーフティフィルタで除外された場合に返される理由
	RaiFilteredReason string                 `json:"raiFilteredReason,omitempty"`
	SafetyAttributes  map[string]interface{} `json:"safetyAttributes,omitempty"`
}

// PredictRequest is the :predict body for Imagen generation and editing.
type PredictRequest struct {
	Instances  []PredictInstance `json:"instances"`
	Parameters PredictParameters `json:"parameters"`
}

type PredictInstance struct {
	Prompt string        `json:"prompt"`
	Image  *EncodedImage `json:"image,omitempty"`
}

type EncodedImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
}

type PredictParameters struct {
	SampleCount int         `json:"sampleCount"`
	AspectRatio string      `json:"aspectRatio,omitempty"`
	EditConfig  *EditConfig `json:"editConfig,omitempty"`
}

type EditConfig struct {
	EditMode string  `json:"editMode,omitempty"`
	Strength float64 `json:"strength,omitempty"`
}
