package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/lingua/internal/testutil"
)

func dialWebSocket(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(30*time.Second)))
	return conn
}

func readResponse(t *testing.T, conn *websocket.Conn) WebSocketDetectResponse {
	t.Helper()

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp WebSocketDetectResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func TestWebSocketDetect(t *testing.T) {
	testutil.InstallFakeDetector(t)
	srv := newTestServer(t)
	conn := dialWebSocket(t, srv)

	require.NoError(t, conn.WriteJSON(WebSocketDetectRequest{
		Type:  "detect",
		Texts: []string{"the quick brown fox", "jumps over the lazy dog"},
	}))

	resp := readResponse(t, conn)
	assert.Equal(t, "processing", resp.Status)

	var results int
	for {
		resp = readResponse(t, conn)
		if resp.Status == "completed" {
			break
		}
		require.Equal(t, "result", resp.Status)
		require.NotNil(t, resp.Result)
		assert.Equal(t, "English", resp.Result.Language)
		results++
	}
	assert.Equal(t, 2, results)
	assert.Equal(t, 2, resp.Count)
}

func TestWebSocketDetectSingleText(t *testing.T) {
	testutil.InstallFakeDetector(t)
	srv := newTestServer(t)
	conn := dialWebSocket(t, srv)

	require.NoError(t, conn.WriteJSON(WebSocketDetectRequest{
		Type: "detect",
		Text: "a single text to classify",
	}))

	resp := readResponse(t, conn)
	require.Equal(t, "processing", resp.Status)

	resp = readResponse(t, conn)
	require.Equal(t, "result", resp.Status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "en", resp.Result.Code)
}

func TestWebSocketMentions(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWebSocket(t, srv)

	require.NoError(t, conn.WriteJSON(WebSocketDetectRequest{
		Type:         "mentions",
		Text:         "Dies ist ein Text über Englisch und Polnisch",
		SearchLocale: "de",
	}))

	resp := readResponse(t, conn)
	require.Equal(t, "completed", resp.Status)
	assert.Equal(t, []string{"Englisch", "Polnisch"}, resp.Mentioned)
	assert.Equal(t, 2, resp.Count)
}

func TestWebSocketInvalidRequests(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWebSocket(t, srv)

	t.Run("unknown type", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(WebSocketDetectRequest{Type: "transcribe"}))
		resp := readResponse(t, conn)
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "invalid_request", resp.ErrorType)
	})

	t.Run("malformed json", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
		resp := readResponse(t, conn)
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "invalid_request", resp.ErrorType)
	})

	t.Run("detect without texts", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(WebSocketDetectRequest{Type: "detect"}))
		resp := readResponse(t, conn)
		assert.Equal(t, "error", resp.Status)
	})
}
