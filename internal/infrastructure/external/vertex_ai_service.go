package external

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/oauth2/google"

	"fashion-assistant/internal/domain/entities"
	"fashion-assistant/internal/domain/repositories"
	"fashion-assistant/internal/domain/valueobjects"
	"fashion-assistant/model"
)

const (
	DefaultVertexImagenModel = "imagegeneration@006"

	// 編集（image-to-image）は capability モデルのみ対応
	DefaultVertexEditModel = "imagen-3.0-capability-001"
)

// TokenSource returns an OAuth2 access token for the Vertex REST API.
type TokenSource func(ctx context.Context) (string, error)

type VertexAIService struct {
	projectID    string
	location     string
	captionModel string
	imagenModel  string
	editModel    string
	pool         repositories.VertexAIClientPool
	httpClient   *http.Client
	baseURL      string
	token        TokenSource
}

func NewVertexAIService(
	projectID, location, captionModel, imagenModel, editModel string,
	pool repositories.VertexAIClientPool,
	httpClient *http.Client,
) *VertexAIService {
	if captionModel == "" {
		captionModel = DefaultTextModel
	}
	if imagenModel == "" {
		imagenModel = DefaultVertexImagenModel
	}
	if editModel == "" {
		editModel = DefaultVertexEditModel
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 300 * time.Second}
	}

	return &VertexAIService{
		projectID:    projectID,
		location:     location,
		captionModel: captionModel,
		imagenModel:  imagenModel,
		editModel:    editModel,
		pool:         pool,
		httpClient:   httpClient,
		baseURL:      fmt.Sprintf("https://%s-aiplatform.googleapis.com", location),
		token:        defaultAccessToken,
	}
}

// CaptionImage describes the uploaded garment via the Vertex AI SDK.
func (s *VertexAIService) CaptionImage(ctx context.Context, imagePath string) (*entities.TextResult, error) {
	image, err := valueobjects.LoadImageData(imagePath)
	if err != nil {
		return nil, err
	}

	client, err := s.pool.GetVertexAIClient(ctx)
	if err != nil {
		return nil, err
	}

	gm := client.GenerativeModel(s.captionModel)
	gm.SetTemperature(0.4)
	gm.SetMaxOutputTokens(256)

	resp, err := gm.GenerateContent(ctx,
		genai.ImageData(string(image.Format()), image.Data()),
		genai.Text(captionPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	slog.Info("CaptionImage", "backend", "vertex", "model", s.captionModel)
	return entities.NewTextResult(sb.String()), nil
}

func (s *VertexAIService) GenerateImage(ctx context.Context, request *entities.TextToImageRequest) (*valueobjects.ImageData, error) {
	body := model.PredictRequest{
		Instances: []model.PredictInstance{
			{Prompt: outfitImagePrompt(request.Prompt())},
		},
		Parameters: model.PredictParameters{
			SampleCount: 1,
			AspectRatio: "1:1",
		},
	}
	return s.predict(ctx, s.imagenModel, body, request.Index())
}

func (s *VertexAIService) GenerateVariation(ctx context.Context, request *entities.ImageToImageRequest) (*valueobjects.ImageData, error) {
	source := request.Source()
	if source == nil {
		loaded, err := valueobjects.LoadImageData(request.SourcePath())
		if err != nil {
			return nil, err
		}
		source = loaded
	}

	body := model.PredictRequest{
		Instances: []model.PredictInstance{
			{
				Prompt: outfitImagePrompt(request.Prompt()),
				Image:  &model.EncodedImage{BytesBase64Encoded: source.ToBase64()},
			},
		},
		Parameters: model.PredictParameters{
			SampleCount: 1,
			EditConfig: &model.EditConfig{
				EditMode: "product-image",
				Strength: request.Strength(),
			},
		},
	}
	return s.predict(ctx, s.editModel, body, request.Index())
}

func (s *VertexAIService) predict(ctx context.Context, modelID string, body model.PredictRequest, index int) (*valueobjects.ImageData, error) {
	accessToken, err := s.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		s.baseURL, s.projectID, s.location, modelID)

	slog.Info("Predict", "model", modelID, "index", index, "edit", body.Parameters.EditConfig != nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var predResp model.PredictResponse
	if err := json.Unmarshal(respBody, &predResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var filtered string
	for _, prediction := range predResp.Predictions {
		if prediction.BytesBase64Encoded == "" {
			if prediction.RaiFilteredReason != "" {
				filtered = prediction.RaiFilteredReason
			}
			continue
		}

		imageBytes, err := base64.StdEncoding.DecodeString(prediction.BytesBase64Encoded)
		if err != nil {
			continue
		}

		imageData, err := valueobjects.NewImageData(imageBytes, prediction.MimeType)
		if err != nil {
			continue
		}
		return imageData, nil
	}

	if filtered != "" {
		return nil, fmt.Errorf("image filtered: %s", filtered)
	}
	return nil, fmt.Errorf("no valid image data found in response")
}

func defaultAccessToken(ctx context.Context) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx,
		"https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("failed to find default credentials: %w", err)
	}

	token, err := creds.TokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}

	return token.AccessToken, nil
}

// Close is a no-op; the shared client pool owns the SDK client.
func (s *VertexAIService) Close() error {
	return nil
}
