package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/PaperChat/internal/api"
	"github.com/akolanti/PaperChat/internal/chat"
	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/data/store"
	"github.com/akolanti/PaperChat/internal/library"
	"github.com/akolanti/PaperChat/internal/prefs"
	"github.com/akolanti/PaperChat/internal/rag/assembler"
	"github.com/akolanti/PaperChat/internal/rag/llm/gemini"
	"github.com/akolanti/PaperChat/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini answers generateContent and models calls like the REST API.
type fakeGemini struct {
	server   *httptest.Server
	calls    int32
	mu       sync.Mutex
	status   int
	body     string
	prompted []string
}

func newFakeGemini(t *testing.T) *fakeGemini {
	f := &fakeGemini{status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"X is about..."}]}}]}`}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		f.mu.Lock()
		defer f.mu.Unlock()
		if strings.HasSuffix(r.URL.Path, "/models") {
			_, _ = w.Write([]byte(`{"models":[{"name":"models/gemini-1.5-flash"},{"name":"models/text-embedding-004"},{"name":"models/gemini-2.0-flash-preview-image-generation"}]}`))
			return
		}
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			f.prompted = append(f.prompted, req.Contents[0].Parts[0].Text)
		}
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGemini) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

type testEnv struct {
	router *chi.Mux
	gemini *fakeGemini
	prefs  *prefs.Prefs
	root   string
}

func newTestEnv(t *testing.T, withKey bool) *testEnv {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	ctx := context.Background()

	root := t.TempDir()
	writeDoc(t, root, "doc-1", `{"title":"X","abstractNote":"About X","date":"2024",
		"attachments":[{"key":"PDF1","contentType":"application/pdf","path":"x.pdf"}],
		"notes":[{"id":"n1","title":"Idea","body":"<p>one</p>"},{"id":"n2","body":"<p>two</p>"}]}`)
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc-1", "PDF1"+config.CacheFileSuffix), []byte("X full text"), 0600))
	writeDoc(t, root, "doc-2", `{"title":"Plain","attachments":[{"key":"TXT1","path":"body.txt"}]}`)
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc-2", "body.txt"), []byte("plain body"), 0600))

	lib, err := library.Open(root)
	require.NoError(t, err)

	fake := newFakeGemini(t)
	p := prefs.New(store.InitInMemoryPrefStore())
	require.NoError(t, p.Set(ctx, prefs.KeyBaseURL, fake.server.URL))
	if withKey {
		require.NoError(t, p.Set(ctx, prefs.KeyAPIKey, "test-key"))
	}
	gateway := gemini.GetGeminiClient(p, fake.server.Client())

	pool := worker.NewPool(time.Minute)
	t.Cleanup(pool.Stop)
	manager := chat.NewManager(chat.Dependencies{
		Documents: lib,
		Context:   assembler.New(),
		Gateway:   gateway,
		Sessions:  store.InitSessionStore(),
		Geometry:  p,
		Turns:     pool,
	})

	services := Services{Chat: manager, Library: lib, Gateway: gateway, Prefs: p}
	InitChatHandler(services)
	handlerInstance = &ChatHandler{services: services}

	r := chi.NewRouter()
	r.Get("/documents", ListDocumentsHandler)
	r.Post("/documents/{id}/reindex", ReindexHandler)
	r.Post("/documents/{id}/synthesize", SynthesizeHandler)
	r.Post("/documents/{id}/chat", ToggleChatHandler)
	r.Post("/documents/{id}/chat/close", CloseChatHandler)
	r.Put("/documents/{id}/chat/geometry", MoveChatHandler)
	r.Post("/documents/{id}/chat/messages", SendMessageHandler)
	r.Get("/documents/{id}/chat/messages", TranscriptHandler)
	r.Get("/documents/{id}/session", GetSessionHandler)
	r.Delete("/documents/{id}/session", ClearSessionHandler)
	r.Get("/models", ListModelsHandler)
	r.Get("/preferences", GetPreferencesHandler)
	r.Put("/preferences", PutPreferencesHandler)

	return &testEnv{router: r, gemini: fake, prefs: p, root: root}
}

func writeDoc(t *testing.T, root, id, item string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, id), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, id, config.ItemFileName), []byte(item), 0600))
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestToggleChat(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opened := decode[api.ToggleResponse](t, rec)
	assert.Equal(t, "OPEN", opened.State)
	require.NotNil(t, opened.Window)
	assert.Equal(t, "X", opened.Window.Title)
	assert.Equal(t, 600, opened.Window.Width)
	assert.Nil(t, opened.Window.Position)

	rec = env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	closed := decode[api.ToggleResponse](t, rec)
	assert.Equal(t, "CLOSED", closed.State)
	assert.Nil(t, closed.Window)

	rec = env.do(t, http.MethodGet, "/documents/doc-1/chat/messages", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestToggleChat_UnknownDocument(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodPost, "/documents/nope/chat", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode[api.ErrorResponse](t, rec).Error.Code)
}

func TestSendMessage_EndToEnd(t *testing.T) {
	env := newTestEnv(t, true)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/documents/doc-1/chat", nil).Code)

	rec := env.do(t, http.MethodPost, "/documents/doc-1/chat/messages", api.SendMessageRequest{Message: "What is X?"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "X is about...", decode[api.SendMessageResponse](t, rec).Answer)

	require.Len(t, env.gemini.prompted, 1)
	prompt := env.gemini.prompted[0]
	assert.Contains(t, prompt, "[[METADATA]]\nTitle: X\nAbstract: About X\nDate: 2024")
	assert.Contains(t, prompt, "[[PDF CONTENT]]\nX full text")
	assert.Contains(t, prompt, "--- Note (two) ---\n<p>two</p>")

	session := decode[api.SessionResponse](t, env.do(t, http.MethodGet, "/documents/doc-1/session", nil))
	assert.Equal(t, []api.Turn{{Role: "user", Text: "What is X?"}, {Role: "model", Text: "X is about..."}}, session.Turns)
}

func TestSendMessage_Errors(t *testing.T) {
	t.Run("Window_Not_Open", func(t *testing.T) {
		env := newTestEnv(t, true)
		rec := env.do(t, http.MethodPost, "/documents/doc-1/chat/messages", api.SendMessageRequest{Message: "hi"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Empty_Message", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)
		rec := env.do(t, http.MethodPost, "/documents/doc-1/chat/messages", api.SendMessageRequest{Message: "  "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Malformed_Body", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)
		req := httptest.NewRequest(http.MethodPost, "/documents/doc-1/chat/messages", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing_Key", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)
		rec := env.do(t, http.MethodPost, "/documents/doc-1/chat/messages", api.SendMessageRequest{Message: "hi"})
		assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
		assert.Equal(t, int32(0), atomic.LoadInt32(&env.gemini.calls))
	})

	t.Run("Remote_Error", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)
		env.gemini.respond(http.StatusTooManyRequests, `{"error":"quota"}`)

		rec := env.do(t, http.MethodPost, "/documents/doc-1/chat/messages", api.SendMessageRequest{Message: "hi"})

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		errResp := decode[api.ErrorResponse](t, rec)
		assert.Equal(t, `Gemini API Error (429): {"error":"quota"}`, errResp.Error.Message)
		assert.True(t, errResp.Error.Retry)

		session := decode[api.SessionResponse](t, env.do(t, http.MethodGet, "/documents/doc-1/session", nil))
		assert.Empty(t, session.Turns)
		window := decode[api.WindowResponse](t, env.do(t, http.MethodGet, "/documents/doc-1/chat/messages", nil))
		require.NotEmpty(t, window.Messages)
		assert.Equal(t, "notice", window.Messages[len(window.Messages)-1].Kind)
	})
}

func TestGeometryAndClose(t *testing.T) {
	env := newTestEnv(t, true)
	env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)

	rec := env.do(t, http.MethodPut, "/documents/doc-1/chat/geometry", api.GeometryRequest{X: 10, Y: 20, Width: 500, Height: 400})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &api.Position{X: 10, Y: 20}, decode[api.WindowResponse](t, rec).Position)

	rec = env.do(t, http.MethodPut, "/documents/doc-1/chat/geometry", api.GeometryRequest{Width: 0, Height: 400})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/documents/doc-1/chat/close", api.CloseChatRequest{Geometry: &api.GeometryRequest{X: 1, Y: 2, Width: 700, Height: 650}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 700, env.prefs.Geometry(context.Background()).Width)

	rec = env.do(t, http.MethodPost, "/documents/doc-1/chat/close", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCloseChat_ChunkedEmptyBody(t *testing.T) {
	env := newTestEnv(t, true)
	env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)

	req := httptest.NewRequest(http.MethodPost, "/documents/doc-1/chat/close", io.NopCloser(strings.NewReader("")))
	require.Equal(t, int64(-1), req.ContentLength)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	reopened := decode[api.ToggleResponse](t, env.do(t, http.MethodPost, "/documents/doc-1/chat", nil))
	assert.Equal(t, "OPEN", reopened.State)

	req = httptest.NewRequest(http.MethodPost, "/documents/doc-1/chat/close", io.NopCloser(strings.NewReader("{bad")))
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearSession(t *testing.T) {
	env := newTestEnv(t, true)
	env.do(t, http.MethodPost, "/documents/doc-1/chat", nil)
	env.do(t, http.MethodPost, "/documents/doc-1/chat/messages", api.SendMessageRequest{Message: "hi"})

	rec := env.do(t, http.MethodDelete, "/documents/doc-1/session", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	session := decode[api.SessionResponse](t, env.do(t, http.MethodGet, "/documents/doc-1/session", nil))
	assert.Empty(t, session.Turns)
}

func TestSynthesize(t *testing.T) {
	env := newTestEnv(t, true)
	env.gemini.respond(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"<h2>Merged</h2>"}]}}]}`)

	rec := env.do(t, http.MethodPost, "/documents/doc-1/synthesize", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h2>Merged</h2>", decode[api.SynthesizeResponse](t, rec).HTML)

	rec = env.do(t, http.MethodPost, "/documents/doc-2/synthesize", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListModels_CachesResult(t *testing.T) {
	env := newTestEnv(t, true)

	cached := decode[api.ModelsResponse](t, env.do(t, http.MethodGet, "/models?cached=true", nil))
	assert.Empty(t, cached.Models)

	rec := env.do(t, http.MethodGet, "/models", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"gemini-1.5-flash"}, decode[api.ModelsResponse](t, rec).Models)

	calls := atomic.LoadInt32(&env.gemini.calls)
	cached = decode[api.ModelsResponse](t, env.do(t, http.MethodGet, "/models?cached=true", nil))
	assert.True(t, cached.Cached)
	assert.Equal(t, []string{"gemini-1.5-flash"}, cached.Models)
	assert.Equal(t, calls, atomic.LoadInt32(&env.gemini.calls), "cached listing must not hit the network")
}

func TestPreferences(t *testing.T) {
	env := newTestEnv(t, false)

	key, model := "AIzaVerySecret9876", "gemini-1.5-pro"
	rec := env.do(t, http.MethodPut, "/preferences", api.PreferencesRequest{APIKey: &key, Model: &model})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[api.PreferencesResponse](t, env.do(t, http.MethodGet, "/preferences", nil))
	assert.True(t, got.APIKeySet)
	assert.Equal(t, "****9876", got.APIKeyHint)
	assert.Equal(t, "gemini-1.5-pro", got.Model)
	assert.Equal(t, config.DefaultSystemInstruction, got.SystemInstruction)
	assert.NotContains(t, rec.Body.String(), "VerySecret")

	empty := ""
	env.do(t, http.MethodPut, "/preferences", api.PreferencesRequest{Model: &empty})
	got = decode[api.PreferencesResponse](t, env.do(t, http.MethodGet, "/preferences", nil))
	assert.Equal(t, config.DefaultGeminiModel, got.Model)
}

func TestDocumentsAndReindex(t *testing.T) {
	env := newTestEnv(t, true)

	docs := decode[api.DocumentsResponse](t, env.do(t, http.MethodGet, "/documents", nil))
	assert.Equal(t, []api.DocumentSummary{{Id: "doc-1", Title: "X"}, {Id: "doc-2", Title: "Plain"}}, docs.Documents)

	rec := env.do(t, http.MethodPost, "/documents/doc-2/reindex", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "TXT1", decode[api.ReindexResponse](t, rec).AttachmentKey)

	cached, err := os.ReadFile(filepath.Join(env.root, "doc-2", "TXT1"+config.CacheFileSuffix))
	require.NoError(t, err)
	assert.Contains(t, string(cached), "plain body")

	rec = env.do(t, http.MethodPost, "/documents/missing/reindex", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
