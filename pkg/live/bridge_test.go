package live

import (
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/formsync-dev/formsync/pkg/query"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func dial(t *testing.T, b *Bridge) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestInboundURLFrameUpdatesSnapshot(t *testing.T) {
	b := NewBridge(discardLogger())

	changed := make(chan struct{}, 1)
	b.OnURLChange(func() { changed <- struct{}{} })

	conn := dial(t, b)
	err := conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"url","query":"name=widget&page=2"}`))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("OnURLChange was not invoked")
	}

	params := b.SearchParams()
	if got := params.Get("name"); got != "widget" {
		t.Errorf("Expected 'widget', got '%s'", got)
	}
	if got := params.Get("page"); got != "2" {
		t.Errorf("Expected '2', got '%s'", got)
	}
}

func TestSetSearchParamsPushesReplaceFrame(t *testing.T) {
	b := NewBridge(discardLogger())
	conn := dial(t, b)

	// Report an URL first so the server has a registered connection and
	// we know the read loop is running.
	ready := make(chan struct{}, 1)
	b.OnURLChange(func() { ready <- struct{}{} })
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"url","query":""}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	<-ready

	committed := query.Parse("name=widget")
	b.SetSearchParams(committed)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if f.Type != frameURLReplace {
		t.Errorf("Expected url_replace frame, got '%s'", f.Type)
	}
	if f.Query != "name=widget" {
		t.Errorf("Expected 'name=widget', got '%s'", f.Query)
	}
}

func TestSetSearchParamsWithoutClientStoresSnapshot(t *testing.T) {
	b := NewBridge(discardLogger())
	b.SetSearchParams(query.Parse("a=1"))

	if got := b.SearchParams().Get("a"); got != "1" {
		t.Errorf("Expected snapshot to be stored, got '%s'", got)
	}
}

func TestUnknownFrameIsIgnored(t *testing.T) {
	b := NewBridge(discardLogger())

	changed := make(chan struct{}, 1)
	b.OnURLChange(func() { changed <- struct{}{} })

	conn := dial(t, b)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"bogus"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"url","query":"a=1"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("Read loop should survive unknown frames")
	}
	if got := b.SearchParams().Get("a"); got != "1" {
		t.Errorf("Expected 'a=1' to be applied, got '%s'", got)
	}
}

func TestSnapshotIsAClone(t *testing.T) {
	b := NewBridge(discardLogger())
	b.SetSearchParams(query.Parse("a=1"))

	snap := b.SearchParams()
	snap.Set("a", "mutated")

	if got := b.SearchParams().Get("a"); got != "1" {
		t.Errorf("Snapshot mutation leaked into the bridge: '%s'", got)
	}
}
