package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nccabhyas/ncc-training-backend/utils"
)

func dialPDFChannel(t *testing.T, serverURL, pdfID, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws/pdf/" + pdfID + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("cannot dial ws: %v", err)
	}
	return conn
}

func waitForDocumentClients(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if H.GetStats()["document_clients"] == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("document_clients never reached %d, stats: %v", want, H.GetStats())
}

// readUntil skips the connection greeting, whose delivery order relative to
// broadcasts is not fixed.
func readUntil(t *testing.T, conn *websocket.Conn, want string) {
	t.Helper()
	for i := 0; i < 5; i++ {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed while waiting for %q: %v", want, err)
		}
		if strings.Contains(string(msg), want) {
			return
		}
	}
	t.Fatalf("never received a message containing %q", want)
}

func TestPDFChannelLifecycle(t *testing.T) {
	t.Setenv("JWT_SECRET", "ws-test-secret")
	gin.SetMode(gin.TestMode)

	token, err := utils.GenerateToken("user-1", "cadet@example.com", "cadet")
	if err != nil {
		t.Fatalf("cannot mint token: %v", err)
	}

	r := gin.New()
	r.GET("/ws/pdf/:id", HandlePDFWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dialPDFChannel(t, srv.URL, "doc-1", token)
	defer conn.Close()
	waitForDocumentClients(t, 1)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	SendStatusUpdate("doc-1", "extracting", 0.6, "")
	readUntil(t, conn, `"status":"extracting"`)

	// peer messages are drained by a single reader; the connection stays up
	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("cannot write client message: %v", err)
	}
	SendStatusUpdate("doc-1", "ready", 1, "")
	readUntil(t, conn, `"status":"ready"`)

	conn.Close()
	waitForDocumentClients(t, 0)
}

func TestPDFChannelRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ws/pdf/:id", HandlePDFWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws/pdf/doc-1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}
