package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"

	"fashion-assistant/internal/application/services"
	"fashion-assistant/internal/application/usecases"
	"fashion-assistant/internal/domain/entities"
	domainservices "fashion-assistant/internal/domain/services"
)

const defaultMaxUploadBytes = 10 << 20

type StylingHandler struct {
	stylingUseCase   *usecases.StylingUseCase
	parameterService *services.ParameterService
	maxUploadBytes   int64
	requestTimeout   time.Duration
	sanitizer        *bluemonday.Policy
}

func NewStylingHandler(
	stylingUseCase *usecases.StylingUseCase,
	parameterService *services.ParameterService,
	maxUploadBytes int64,
	requestTimeout time.Duration,
) *StylingHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &StylingHandler{
		stylingUseCase:   stylingUseCase,
		parameterService: parameterService,
		maxUploadBytes:   maxUploadBytes,
		requestTimeout:   requestTimeout,
		sanitizer:        bluemonday.StrictPolicy(),
	}
}

func (h *StylingHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/style", h.HandleStyle).Methods(http.MethodPost)
	r.HandleFunc("/results/{id}", h.HandleResult).Methods(http.MethodGet)
	r.HandleFunc("/results/{id}/images/{index:[0-9]+}", h.HandleResultImage).Methods(http.MethodGet)
	r.HandleFunc("/api/options", h.HandleOptions).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)
}

type imageResponse struct {
	ID    string `json:"id"`
	Data  string `json:"data,omitempty"`
	Type  string `json:"type,omitempty"`
	Error string `json:"error,omitempty"`
}

type stylingResponse struct {
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
	RequestID string          `json:"request_id"`
	ResultID  string          `json:"result_id"`
	Caption   string          `json:"caption"`
	Advice    string          `json:"advice"`
	Mode      string          `json:"mode,omitempty"`
	Images    []imageResponse `json:"images"`
}

func (h *StylingHandler) HandleStyle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendError(w, fmt.Sprintf("Upload is too large (limit %d MB).", h.maxUploadBytes>>20), http.StatusRequestEntityTooLarge)
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			h.sendError(w, "Invalid form data.", http.StatusBadRequest)
			return
		}
	}

	imageData, mimeType, err := h.readImage(r)
	if err != nil {
		h.sendError(w, "Failed to read the uploaded image.", http.StatusBadRequest)
		return
	}

	input := usecases.StylingInput{
		Text:          r.FormValue("text"),
		ImageData:     imageData,
		ImageMimeType: mimeType,
		Parameters:    h.parameterService.ParseFromRequest(r),
	}

	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	output, err := h.stylingUseCase.Execute(ctx, input)
	if err != nil {
		slog.Warn("HandleStyle", "error", err)

		switch {
		case errors.Is(err, domainservices.ErrValidation):
			h.sendError(w, validationMessage(err), http.StatusBadRequest)
		case errors.Is(err, domainservices.ErrTranslation) && output != nil:
			h.sendJSON(w, http.StatusBadGateway, h.createResponse(output, "Translation of the input text failed."))
		case domainservices.IsQuotaError(err):
			h.sendError(w, "The service is busy right now. Please wait a moment and try again.", http.StatusTooManyRequests)
		case errors.Is(err, context.DeadlineExceeded):
			h.sendError(w, "The request took too long. Try fewer variations.", http.StatusGatewayTimeout)
		default:
			h.sendError(w, "Styling failed. Please try again.", http.StatusInternalServerError)
		}
		return
	}

	h.sendJSON(w, http.StatusOK, h.createResponse(output, ""))
}

func (h *StylingHandler) HandleResult(w http.ResponseWriter, r *http.Request) {
	id := entities.StylingResultID(mux.Vars(r)["id"])

	output, err := h.stylingUseCase.GetResult(r.Context(), id)
	if err != nil {
		h.sendError(w, "Result not found. Results are kept only for recent requests.", http.StatusNotFound)
		return
	}

	h.sendJSON(w, http.StatusOK, h.createResponse(output, ""))
}

func (h *StylingHandler) HandleResultImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		h.sendError(w, "Invalid image index.", http.StatusBadRequest)
		return
	}

	image, err := h.stylingUseCase.GetImage(r.Context(), entities.StylingResultID(vars["id"]), index)
	if err != nil {
		h.sendError(w, "Image not found.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", image.Type)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image.Data)
}

func (h *StylingHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, h.parameterService.Catalog())
}

func (h *StylingHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *StylingHandler) readImage(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", nil
	}

	return data, header.Header.Get("Content-Type"), nil
}

func (h *StylingHandler) createResponse(output *usecases.StylingOutput, errMessage string) stylingResponse {
	response := stylingResponse{
		Success:   errMessage == "",
		Error:     errMessage,
		RequestID: string(output.RequestID),
		ResultID:  string(output.ResultID),
		Caption:   h.sanitizer.Sanitize(output.Caption),
		Advice:    h.sanitizer.Sanitize(output.Advice),
		Mode:      string(output.Mode),
		Images:    make([]imageResponse, 0, len(output.Images)),
	}

	for _, img := range output.Images {
		id := fmt.Sprintf("image_%d", img.Index)
		if img.Error != "" {
			response.Images = append(response.Images, imageResponse{
				ID:    id,
				Error: h.sanitizer.Sanitize(img.Error),
			})
			continue
		}
		response.Images = append(response.Images, imageResponse{
			ID:   id,
			Data: base64.StdEncoding.EncodeToString(img.Data),
			Type: img.Type,
		})
	}

	return response
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domainservices.ErrEmptyText):
		return "Text input cannot be empty. Please describe your style or occasion."
	case errors.Is(err, domainservices.ErrInvalidImage):
		return "Uploaded file is not a valid image."
	default:
		return "Invalid request."
	}
}

func (h *StylingHandler) sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *StylingHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": message})
}

// WithLogging logs one line per request.
func WithLogging(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("http", "method", r.Method, "path", r.URL.Path, "dur_ms", time.Since(start).Milliseconds())
		})
	}
}
