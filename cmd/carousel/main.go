package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/carousel/internal/config"
	"github.com/jask/carousel/internal/gallery"
	"github.com/jask/carousel/internal/generate"
	"github.com/jask/carousel/internal/llm"
	"github.com/jask/carousel/internal/logging"
	"github.com/jask/carousel/internal/secrets"
	"github.com/jask/carousel/internal/thumbnail"
	"github.com/jask/carousel/internal/tui"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// carousel store-key <provider> reads a key from stdin into the
	// encrypted store so it need not live in the environment.
	if len(os.Args) == 3 && os.Args[1] == "store-key" {
		if err := storeKey(os.Args[2]); err != nil {
			log.Fatalf("store key: %v", err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	apiKey := resolveAPIKey(cfg)
	provider := llmProvider(cfg.LLM, apiKey, logger)
	logger.Info("starting", "provider", provider.Name(), "scenes", cfg.Generation.SceneCount)

	gen := generate.New(provider, logger, generate.Options{
		SceneCount:        cfg.Generation.SceneCount,
		Concurrency:       cfg.Generation.Concurrency,
		RequestsPerMinute: cfg.Generation.RequestsPerMinute,
	})

	app := tui.New(ctx, gen, thumbnail.NewLoader(nil), logger, gallery.Default(), tui.Options{
		Interval:      cfg.Carousel.AutoplayInterval,
		FrameInterval: cfg.Carousel.FrameInterval,
		ItemRatio:     cfg.Carousel.ItemRatio,
		Gap:           cfg.Carousel.Gap,
		ProviderName:  provider.Name(),
		SceneCount:    cfg.Generation.SceneCount,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "error", err)
		fmt.Printf("error: %v\n", err)
	}
	app.Shutdown()
}

// llmProvider picks the backend. Without a key only the offline provider can
// work, so it is used regardless of the configured name.
func llmProvider(cfg config.LLMConfig, apiKey string, logger *slog.Logger) llm.Provider {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name != "offline" && apiKey == "" {
		logger.Warn("no API key resolved, using offline provider", "provider", name)
		return llm.NewOfflineProvider()
	}
	switch name {
	case "offline":
		return llm.NewOfflineProvider()
	case "openai":
		text, image := cfg.TextModel, cfg.ImageModel
		if strings.HasPrefix(text, "gemini") {
			text = "gpt-4o-mini"
		}
		if strings.HasPrefix(image, "gemini") {
			image = "dall-e-3"
		}
		return llm.NewOpenAIProvider(apiKey, text, image, cfg.Timeout)
	default:
		return llm.NewGeminiProvider(apiKey, cfg.TextModel, cfg.ImageModel, cfg.Timeout)
	}
}

func resolveAPIKey(cfg config.Config) string {
	provider := strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	env := strings.TrimSpace(cfg.LLM.APIKeyEnv)
	if provider == "openai" && (env == "" || env == "GEMINI_API_KEY") {
		env = "OPENAI_API_KEY"
	}
	if env == "" {
		env = "GEMINI_API_KEY"
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if k, err := secrets.FetchProviderKey(provider); err == nil {
		return k
	}
	return strings.TrimSpace(cfg.LLM.APIKey)
}

func storeKey(provider string) error {
	fmt.Fprintf(os.Stderr, "%s API key: ", provider)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return err
	}
	if err := secrets.StoreProviderKey(provider, strings.TrimSpace(line)); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "saved")
	return nil
}
