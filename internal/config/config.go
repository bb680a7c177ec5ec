package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fashion-assistant/internal/domain/valueobjects"
)

const (
	CaptionBackendGemini = "gemini"
	CaptionBackendVertex = "vertex"

	ImageBackendImagen  = "imagen"
	ImageBackendVertex  = "vertex"
	ImageBackendComfyUI = "comfyui"
)

type Config struct {
	ProjectID    string
	Location     string
	GeminiAPIKey string

	CaptionBackend string
	ImageBackend   string

	TextModel         string
	ImagenModel       string
	ImageEditModel    string
	VertexImagenModel string
	VertexEditModel   string

	ComfyAddress         string
	ComfyPort            int
	ComfyTxt2ImgWorkflow string
	ComfyImg2ImgWorkflow string

	Port     string
	LogLevel string
	TempDir  string

	MaxUploadBytes           int64
	MaxConcurrentGenerations int
	ResultCacheSize          int
	RequestTimeout           time.Duration
	HTTPTimeout              time.Duration
	PreferIPv4               bool

	Catalog valueobjects.Catalog
}

// Load reads the environment. Call godotenv.Load before it to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		ProjectID:    getEnv("PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		Location:     getEnv("LOCATION", "us-central1"),
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),

		CaptionBackend: strings.ToLower(getEnv("CAPTION_BACKEND", CaptionBackendGemini)),
		ImageBackend:   strings.ToLower(getEnv("IMAGE_BACKEND", ImageBackendImagen)),

		TextModel:         getEnv("TEXT_MODEL", "gemini-2.5-flash"),
		ImagenModel:       getEnv("IMAGEN_MODEL", "imagen-3.0-generate-002"),
		ImageEditModel:    getEnv("IMAGE_EDIT_MODEL", "gemini-2.5-flash-image-preview"),
		VertexImagenModel: getEnv("VERTEX_IMAGEN_MODEL", "imagegeneration@006"),
		VertexEditModel:   getEnv("VERTEX_IMAGEN_EDIT_MODEL", "imagen-3.0-capability-001"),

		ComfyAddress:         getEnv("COMFY_ADDRESS", "localhost"),
		ComfyPort:            getEnvInt("COMFY_PORT", 8188),
		ComfyTxt2ImgWorkflow: getEnv("COMFY_TXT2IMG_WORKFLOW", "workflows/txt2img.json"),
		ComfyImg2ImgWorkflow: getEnv("COMFY_IMG2IMG_WORKFLOW", "workflows/img2img.json"),

		Port:     getEnv("PORT", "8080"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		TempDir:  getEnv("TEMP_DIR", os.TempDir()),

		MaxUploadBytes:           int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		MaxConcurrentGenerations: getEnvInt("MAX_CONCURRENT_GENERATIONS", 1),
		ResultCacheSize:          getEnvInt("RESULT_CACHE_SIZE", 32),
		RequestTimeout:           time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 600)) * time.Second,
		HTTPTimeout:              time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 300)) * time.Second,
		PreferIPv4:               getEnvBool("PREFER_IPV4", false),

		Catalog: valueobjects.DefaultCatalog(),
	}

	if langs := getEnvList("LANGUAGES"); len(langs) > 0 {
		cfg.Catalog.Languages = make([]valueobjects.Language, 0, len(langs))
		for _, l := range langs {
			cfg.Catalog.Languages = append(cfg.Catalog.Languages, valueobjects.Language(strings.ToLower(l)))
		}
	}

	if path := getEnv("CATALOG_FILE", ""); path != "" {
		catalog, err := LoadCatalog(path, cfg.Catalog)
		if err != nil {
			return Config{}, err
		}
		cfg.Catalog = catalog
	}

	if !cfg.Catalog.HasLanguage(valueobjects.PivotLanguage) {
		cfg.Catalog.Languages = append([]valueobjects.Language{valueobjects.PivotLanguage}, cfg.Catalog.Languages...)
	}

	if cfg.MaxConcurrentGenerations < 1 {
		cfg.MaxConcurrentGenerations = 1
	}
	if cfg.ResultCacheSize < 1 {
		cfg.ResultCacheSize = 1
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 600 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 300 * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.CaptionBackend {
	case CaptionBackendGemini, CaptionBackendVertex:
	default:
		return fmt.Errorf("unknown CAPTION_BACKEND %q", c.CaptionBackend)
	}

	switch c.ImageBackend {
	case ImageBackendImagen, ImageBackendVertex, ImageBackendComfyUI:
	default:
		return fmt.Errorf("unknown IMAGE_BACKEND %q", c.ImageBackend)
	}

	needsProject := c.GeminiAPIKey == "" ||
		c.CaptionBackend == CaptionBackendVertex ||
		c.ImageBackend == ImageBackendVertex
	if needsProject && c.ProjectID == "" {
		return errors.New("PROJECT_ID or GOOGLE_CLOUD_PROJECT is required unless GEMINI_API_KEY is set and no vertex backend is selected")
	}

	if c.ImageBackend == ImageBackendComfyUI && c.ComfyTxt2ImgWorkflow == "" {
		return errors.New("COMFY_TXT2IMG_WORKFLOW is required for the comfyui backend")
	}

	return nil
}

// LoadCatalog reads a YAML catalog. Lists missing from the file keep the
// values of base.
func LoadCatalog(path string, base valueobjects.Catalog) (valueobjects.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return valueobjects.Catalog{}, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file valueobjects.Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return valueobjects.Catalog{}, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	catalog := base
	if len(file.Styles) > 0 {
		catalog.Styles = file.Styles
	}
	if len(file.Seasons) > 0 {
		catalog.Seasons = file.Seasons
	}
	if len(file.Occasions) > 0 {
		catalog.Occasions = file.Occasions
	}
	if len(file.Languages) > 0 {
		catalog.Languages = file.Languages
	}
	return catalog, nil
}

func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
