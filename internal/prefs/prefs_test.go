package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/data/store"
	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("store offline")
}
func (failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("store offline")
}
func (failingStore) Delete(ctx context.Context, key string) error {
	return errors.New("store offline")
}

func TestEndpointConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	p := New(store.InitInMemoryPrefStore())

	cfg := p.EndpointConfig(context.Background())

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, config.DefaultGeminiModel, cfg.Model)
	assert.Equal(t, config.DefaultSystemInstruction, cfg.SystemInstruction)
	assert.Equal(t, config.DefaultGeminiBaseURL, cfg.BaseURL)
}

func TestEndpointConfig_ReadsFreshValues(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	ctx := context.Background()
	p := New(store.InitInMemoryPrefStore())

	require.NoError(t, p.Set(ctx, KeyAPIKey, "k1"))
	require.NoError(t, p.Set(ctx, KeyModel, "gemini-2.0-pro"))
	assert.Equal(t, "k1", p.EndpointConfig(ctx).APIKey)
	assert.Equal(t, "gemini-2.0-pro", p.EndpointConfig(ctx).Model)

	require.NoError(t, p.Set(ctx, KeyAPIKey, "k2"))
	assert.Equal(t, "k2", p.EndpointConfig(ctx).APIKey)

	require.NoError(t, p.Set(ctx, KeyModel, ""))
	assert.Equal(t, config.DefaultGeminiModel, p.EndpointConfig(ctx).Model)
}

func TestEndpointConfig_EnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	ctx := context.Background()
	p := New(store.InitInMemoryPrefStore())

	assert.Equal(t, "env-key", p.EndpointConfig(ctx).APIKey)

	require.NoError(t, p.Set(ctx, KeyAPIKey, "pref-key"))
	assert.Equal(t, "pref-key", p.EndpointConfig(ctx).APIKey)
}

func TestSet_RejectsUnknownKeys(t *testing.T) {
	p := New(store.InitInMemoryPrefStore())

	err := p.Set(context.Background(), KeyWindowX, "10")
	assert.ErrorIs(t, err, ErrUnknownPreference)
}

func TestGeometry(t *testing.T) {
	ctx := context.Background()
	p := New(store.InitInMemoryPrefStore())

	assert.Equal(t, chatModel.Geometry{X: -1, Y: -1, Width: 600, Height: 600}, p.Geometry(ctx))

	want := chatModel.Geometry{X: 40, Y: 80, Width: 720, Height: 500}
	require.NoError(t, p.SaveGeometry(ctx, want))
	assert.Equal(t, want, p.Geometry(ctx))
}

func TestGeometry_IgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	s := store.InitInMemoryPrefStore()
	require.NoError(t, s.Set(ctx, KeyWindowWidth, "wide"))
	p := New(s)

	assert.Equal(t, config.DefaultWindowWidth, p.Geometry(ctx).Width)
}

func TestModelList(t *testing.T) {
	ctx := context.Background()
	s := store.InitInMemoryPrefStore()
	p := New(s)

	assert.Nil(t, p.ModelList(ctx))

	require.NoError(t, p.SaveModelList(ctx, []string{"gemini-1.5-flash", "gemini-1.5-pro"}))
	assert.Equal(t, []string{"gemini-1.5-flash", "gemini-1.5-pro"}, p.ModelList(ctx))

	require.NoError(t, s.Set(ctx, KeyModelList, "{not json"))
	assert.Nil(t, p.ModelList(ctx))
}

func TestFailingStore(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	ctx := context.Background()
	p := New(failingStore{})

	assert.Equal(t, config.DefaultGeminiModel, p.EndpointConfig(ctx).Model)
	assert.Equal(t, config.DefaultWindowHeight, p.Geometry(ctx).Height)
	assert.Error(t, p.SaveGeometry(ctx, chatModel.Geometry{}))
}

func TestSnapshot_MasksKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	ctx := context.Background()
	p := New(store.InitInMemoryPrefStore())
	require.NoError(t, p.Set(ctx, KeyAPIKey, "AIzaSecret1234"))

	snap := p.Snapshot(ctx)

	assert.True(t, snap.APIKeySet)
	assert.Equal(t, "****1234", snap.APIKeyHint)
	assert.NotContains(t, snap.APIKeyHint, "Secret")
}
