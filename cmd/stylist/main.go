// Command stylist runs one styling request from the terminal and writes the
// generated outfit images to a directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"fashion-assistant/internal/application/usecases"
	"fashion-assistant/internal/bootstrap"
	"fashion-assistant/internal/config"
	"fashion-assistant/internal/domain/entities"
	domainservices "fashion-assistant/internal/domain/services"
	"fashion-assistant/internal/domain/valueobjects"
	"fashion-assistant/internal/httpclient"
)

type cliOptions struct {
	text      string
	imagePath string
	outDir    string
	params    *usecases.StylingParametersInput
}

// parseFlags uses the same selector defaults as the web form.
func parseFlags(args []string) (*cliOptions, error) {
	defaults := valueobjects.DefaultStylingParameters()

	fs := flag.NewFlagSet("stylist", flag.ContinueOnError)
	text := fs.String("text", "", "describe your style or occasion")
	imagePath := fs.String("image", "", "optional clothing photo")
	style := fs.String("style", string(defaults.Style()), "outfit style")
	season := fs.String("season", string(defaults.Season()), "season")
	occasion := fs.String("occasion", string(defaults.Occasion()), "occasion")
	lang := fs.String("lang", string(defaults.Language()), "language of the text and advice")
	count := fs.Int("n", defaults.VariationCount(), "number of outfit images (1-5)")
	variations := fs.Bool("variations", defaults.UseVariations(), "derive images from the uploaded photo")
	outDir := fs.String("out", ".", "directory for generated images")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &cliOptions{
		text:      *text,
		imagePath: *imagePath,
		outDir:    *outDir,
		params: &usecases.StylingParametersInput{
			Style:          *style,
			Season:         *season,
			Occasion:       *occasion,
			Language:       strings.ToLower(*lang),
			UseVariations:  *variations,
			VariationCount: *count,
		},
	}, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	text, imagePath, outDir, params := &opts.text, &opts.imagePath, &opts.outDir, opts.params

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if strings.TrimSpace(*text) == "" && isTerminal(os.Stdin) {
		if err := askInteractive(cfg.Catalog, text, imagePath, params); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				os.Exit(130)
			}
			fmt.Fprintln(os.Stderr, "prompt:", err)
			os.Exit(1)
		}
	}

	input := usecases.StylingInput{Text: *text, Parameters: params}
	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "image:", err)
			os.Exit(1)
		}
		input.ImageData = data
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bar := progressbar.Default(int64(params.VariationCount), "generating outfits")
	hook := func(index int, v entities.Variation) {
		_ = bar.Add(1)
	}

	httpClient := httpclient.New(httpclient.Options{PreferIPv4: cfg.PreferIPv4, Timeout: cfg.HTTPTimeout})
	pipeline, err := bootstrap.New(ctx, cfg, httpClient, domainservices.WithVariationHook(hook))
	if err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		os.Exit(1)
	}
	defer pipeline.Close()

	output, err := pipeline.UseCase.Execute(ctx, input)
	_ = bar.Finish()
	if output != nil {
		if werr := printOutput(output, *outDir); werr != nil {
			fmt.Fprintln(os.Stderr, "write:", werr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func askInteractive(catalog valueobjects.Catalog, text, imagePath *string, params *usecases.StylingParametersInput) error {
	questions := []*survey.Question{
		{
			Name:     "text",
			Prompt:   &survey.Multiline{Message: "Describe your style or occasion:"},
			Validate: survey.Required,
		},
		{
			Name:   "image",
			Prompt: &survey.Input{Message: "Clothing photo (optional path):"},
		},
		{
			Name:   "style",
			Prompt: &survey.Select{Message: "Style:", Options: toStrings(catalog.Styles), Default: defaultIn(toStrings(catalog.Styles), params.Style)},
		},
		{
			Name:   "season",
			Prompt: &survey.Select{Message: "Season:", Options: toStrings(catalog.Seasons), Default: defaultIn(toStrings(catalog.Seasons), params.Season)},
		},
		{
			Name:   "occasion",
			Prompt: &survey.Select{Message: "Occasion:", Options: toStrings(catalog.Occasions), Default: defaultIn(toStrings(catalog.Occasions), params.Occasion)},
		},
		{
			Name:   "language",
			Prompt: &survey.Select{Message: "Language:", Options: toStrings(catalog.Languages), Default: defaultIn(toStrings(catalog.Languages), params.Language)},
		},
	}

	answers := struct {
		Text     string `survey:"text"`
		Image    string `survey:"image"`
		Style    string `survey:"style"`
		Season   string `survey:"season"`
		Occasion string `survey:"occasion"`
		Language string `survey:"language"`
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	*text = answers.Text
	*imagePath = strings.TrimSpace(answers.Image)
	params.Style = answers.Style
	params.Season = answers.Season
	params.Occasion = answers.Occasion
	params.Language = answers.Language

	if *imagePath != "" {
		if err := survey.AskOne(&survey.Confirm{Message: "Generate variations of the photo?", Default: params.UseVariations}, &params.UseVariations); err != nil {
			return err
		}
	}
	return nil
}

func printOutput(output *usecases.StylingOutput, outDir string) error {
	if output.Caption != "" {
		fmt.Printf("\nCaption:\n%s\n", output.Caption)
	}
	if output.Advice != "" {
		fmt.Printf("\nAdvice:\n%s\n", output.Advice)
	}

	if len(output.Images) == 0 {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	fmt.Println()
	for _, img := range output.Images {
		if img.Error != "" {
			fmt.Printf("image %d: %s\n", img.Index, img.Error)
			continue
		}

		ext := ".png"
		if data, err := valueobjects.NewImageData(img.Data, img.Type); err == nil {
			ext = data.Extension()
		}
		path := filepath.Join(outDir, fmt.Sprintf("variation_%d%s", img.Index, ext))
		if err := os.WriteFile(path, img.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("image %d: %s\n", img.Index, path)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// defaultIn returns nil when v is not an option, which survey treats as no default.
func defaultIn(options []string, v string) any {
	if slices.Contains(options, v) {
		return v
	}
	return nil
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
