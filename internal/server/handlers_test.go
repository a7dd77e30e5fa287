package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/lingua/internal/config"
	"github.com/MeKo-Tech/lingua/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.CatalogDir = testutil.GetLanguagesDir(t)
	cfg.Detector.ScratchDir = t.TempDir()
	cfg.Detector.QuarantineDir = t.TempDir()

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHealthHandler(t *testing.T) {
	t.Run("detector available", func(t *testing.T) {
		testutil.InstallFakeDetector(t)
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		srv.healthHandler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "available", resp.Detector)
		assert.NotEmpty(t, resp.Time)
	})

	t.Run("detector missing", func(t *testing.T) {
		srv := newTestServer(t)
		t.Setenv("PATH", t.TempDir())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		srv.healthHandler(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unavailable", resp.Detector)
	})

	t.Run("wrong method", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		rec := httptest.NewRecorder()
		srv.healthHandler(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestDetectHandler(t *testing.T) {
	testutil.InstallFakeDetector(t)
	srv := newTestServer(t)

	t.Run("classifies text", func(t *testing.T) {
		rec := postJSON(t, srv.detectHandler, "/detect",
			DetectRequest{Text: "the quick brown fox"})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp DetectResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Result)
		assert.Equal(t, "English", resp.Result.Language)
		assert.Equal(t, "en", resp.Result.Code)
	})

	t.Run("translates display name", func(t *testing.T) {
		rec := postJSON(t, srv.detectHandler, "/detect",
			DetectRequest{Text: "the quick brown fox", Locale: "de"})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp DetectResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.NotNil(t, resp.Result)
		assert.Equal(t, "Englisch", resp.Result.Language)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		rec := postJSON(t, srv.detectHandler, "/detect", DetectRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/detect", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		srv.detectHandler(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDetectHandlerDetectorUnavailable(t *testing.T) {
	srv := newTestServer(t)
	t.Setenv("PATH", t.TempDir())

	rec := postJSON(t, srv.detectHandler, "/detect", DetectRequest{Text: "hello"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "Detection failed")
}

func TestBulkDetectHandler(t *testing.T) {
	testutil.InstallFakeDetector(t)
	srv := newTestServer(t)

	t.Run("classifies batch", func(t *testing.T) {
		rec := postJSON(t, srv.bulkDetectHandler, "/detect/bulk",
			BulkDetectRequest{Texts: []string{
				"the quick brown fox",
				"jumps over the lazy dog",
			}})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp BulkDetectResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Count)
		require.Len(t, resp.Results, 2)
		assert.NotEqual(t, resp.Results[0].ID, resp.Results[1].ID)
	})

	t.Run("empty texts rejected", func(t *testing.T) {
		rec := postJSON(t, srv.bulkDetectHandler, "/detect/bulk", BulkDetectRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("oversized batch rejected", func(t *testing.T) {
		texts := make([]string, srv.maxTexts+1)
		for i := range texts {
			texts[i] = "text"
		}
		rec := postJSON(t, srv.bulkDetectHandler, "/detect/bulk", BulkDetectRequest{Texts: texts})
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("all-empty batch returns empty results", func(t *testing.T) {
		rec := postJSON(t, srv.bulkDetectHandler, "/detect/bulk",
			BulkDetectRequest{Texts: []string{""}})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp BulkDetectResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Results)
	})
}

func TestMentionsHandler(t *testing.T) {
	srv := newTestServer(t)

	t.Run("finds mentions", func(t *testing.T) {
		rec := postJSON(t, srv.mentionsHandler, "/mentions", MentionsRequest{
			Text:         "Dies ist ein Text über Englisch und Polnisch",
			SearchLocale: "de",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp MentionsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Equal(t, []string{"Englisch", "Polnisch"}, resp.Mentioned)
	})

	t.Run("translates mentions", func(t *testing.T) {
		rec := postJSON(t, srv.mentionsHandler, "/mentions", MentionsRequest{
			Text:          "Dies ist ein Text über Englisch und Polnisch",
			SearchLocale:  "de",
			DisplayLocale: "en",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp MentionsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, []string{"English", "Polish"}, resp.Mentioned)
	})

	t.Run("no mentions yields empty list", func(t *testing.T) {
		rec := postJSON(t, srv.mentionsHandler, "/mentions", MentionsRequest{
			Text:         "nothing of interest here",
			SearchLocale: "en",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp MentionsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Mentioned)
	})

	t.Run("missing search locale rejected", func(t *testing.T) {
		rec := postJSON(t, srv.mentionsHandler, "/mentions", MentionsRequest{Text: "hello"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLanguagesHandler(t *testing.T) {
	srv := newTestServer(t)

	t.Run("returns table", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/languages?locale=de", nil)
		rec := httptest.NewRecorder()
		srv.languagesHandler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp LanguagesResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "de", resp.Locale)
		assert.Equal(t, "Englisch", resp.Languages["en"])
		assert.Equal(t, resp.Count, len(resp.Languages))
	})

	t.Run("unsupported locale yields empty table", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/languages?locale=nope", nil)
		rec := httptest.NewRecorder()
		srv.languagesHandler(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp LanguagesResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 0, resp.Count)
	})

	t.Run("missing locale rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/languages", nil)
		rec := httptest.NewRecorder()
		srv.languagesHandler(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
