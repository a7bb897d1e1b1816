package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/akolanti/PaperChat/internal/rag/llm"
	"github.com/akolanti/PaperChat/pkg/logger_i"
)

// keys below live under config.PrefNamespace in the backing store
const (
	KeyAPIKey            = "apiKey"
	KeyModel             = "model"
	KeySystemInstruction = "systemInstruction"
	KeyBaseURL           = "baseURL"
	KeyModelList         = "modelList"
	KeyWindowWidth       = "chatWindowWidth"
	KeyWindowHeight      = "chatWindowHeight"
	KeyWindowX           = "chatWindowX"
	KeyWindowY           = "chatWindowY"
)

var ErrUnknownPreference = errors.New("unknown preference")

var settable = map[string]bool{
	KeyAPIKey:            true,
	KeyModel:             true,
	KeySystemInstruction: true,
	KeyBaseURL:           true,
}

type Prefs struct {
	store  chatModel.PrefStore
	logger *logger_i.Logger
}

func New(store chatModel.PrefStore) *Prefs {
	return &Prefs{store: store, logger: logger_i.NewLogger("Prefs")}
}

// String returns def when the key is unset or the store fails.
func (p *Prefs) String(ctx context.Context, key, def string) string {
	value, found, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.WithTrace(ctx).Warn("Preference read failed", "key", key, "error", err)
		return def
	}
	if !found {
		return def
	}
	return value
}

func (p *Prefs) Int(ctx context.Context, key string, def int) int {
	raw := p.String(ctx, key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}

// EndpointConfig reads the store on every call; an unset apiKey falls back to the environment.
func (p *Prefs) EndpointConfig(ctx context.Context) llm.EndpointConfig {
	apiKey := strings.TrimSpace(p.String(ctx, KeyAPIKey, ""))
	if apiKey == "" {
		apiKey = config.GeminiAPIKeyFromEnv()
	}
	return llm.EndpointConfig{
		APIKey:            apiKey,
		Model:             p.String(ctx, KeyModel, config.DefaultGeminiModel),
		SystemInstruction: p.String(ctx, KeySystemInstruction, config.DefaultSystemInstruction),
		BaseURL:           p.String(ctx, KeyBaseURL, config.DefaultGeminiBaseURL),
	}
}

func (p *Prefs) Geometry(ctx context.Context) chatModel.Geometry {
	return chatModel.Geometry{
		Width:  p.Int(ctx, KeyWindowWidth, config.DefaultWindowWidth),
		Height: p.Int(ctx, KeyWindowHeight, config.DefaultWindowHeight),
		X:      p.Int(ctx, KeyWindowX, config.UnsetWindowCoordinate),
		Y:      p.Int(ctx, KeyWindowY, config.UnsetWindowCoordinate),
	}
}

func (p *Prefs) SaveGeometry(ctx context.Context, g chatModel.Geometry) error {
	values := map[string]int{
		KeyWindowWidth:  g.Width,
		KeyWindowHeight: g.Height,
		KeyWindowX:      g.X,
		KeyWindowY:      g.Y,
	}
	var errs []error
	for key, v := range values {
		if err := p.store.Set(ctx, key, strconv.Itoa(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// ModelList returns nil when nothing was cached or the cached value is unreadable.
func (p *Prefs) ModelList(ctx context.Context) []string {
	raw := p.String(ctx, KeyModelList, "")
	if raw == "" {
		return nil
	}
	var models []string
	if err := json.Unmarshal([]byte(raw), &models); err != nil {
		p.logger.WithTrace(ctx).Warn("Cached model list is corrupt", "error", err)
		return nil
	}
	return models
}

func (p *Prefs) SaveModelList(ctx context.Context, models []string) error {
	if models == nil {
		models = []string{}
	}
	raw, err := json.Marshal(models)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, KeyModelList, string(raw))
}

// Set writes one user-editable preference; an empty value clears it.
func (p *Prefs) Set(ctx context.Context, key, value string) error {
	if !settable[key] {
		return fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	if value == "" {
		return p.store.Delete(ctx, key)
	}
	return p.store.Set(ctx, key, value)
}

// Snapshot is the user-facing view of the settings, with the key masked.
type Snapshot struct {
	APIKeySet         bool     `json:"apiKeySet"`
	APIKeyHint        string   `json:"apiKeyHint,omitempty"`
	Model             string   `json:"model"`
	SystemInstruction string   `json:"systemInstruction"`
	BaseURL           string   `json:"baseURL"`
	ModelList         []string `json:"modelList"`
}

func (p *Prefs) Snapshot(ctx context.Context) Snapshot {
	cfg := p.EndpointConfig(ctx)
	return Snapshot{
		APIKeySet:         cfg.APIKey != "",
		APIKeyHint:        maskKey(cfg.APIKey),
		Model:             cfg.Model,
		SystemInstruction: cfg.SystemInstruction,
		BaseURL:           cfg.BaseURL,
		ModelList:         p.ModelList(ctx),
	}
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
