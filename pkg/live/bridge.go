package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/formsync-dev/formsync/pkg/query"
)

// maxFrameSize bounds inbound frames; URL frames are small.
const maxFrameSize = 16 * 1024

// frame is the wire format in both directions.
type frame struct {
	Type  string `json:"type"`
	Query string `json:"query"`
}

// Frame types.
const (
	frameURL        = "url"         // client -> server: browser URL changed
	frameURLReplace = "url_replace" // server -> client: apply this query string
)

// Bridge implements formsync.QuerySource backed by a connected browser.
// It serves one client at a time; a new connection replaces the
// previous one.
type Bridge struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	params *query.Params

	changeMu sync.Mutex
	onChange func()
}

// NewBridge creates a Bridge. A nil logger falls back to slog.Default().
func NewBridge(logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
		params: query.New(),
	}
}

// OnURLChange registers the callback invoked after every inbound URL
// frame. Wire this to Syncer.HydrateFromURL.
func (b *Bridge) OnURLChange(fn func()) {
	b.changeMu.Lock()
	b.onChange = fn
	b.changeMu.Unlock()
}

// SearchParams returns a snapshot of the last reported query string.
func (b *Bridge) SearchParams() *query.Params {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params.Clone()
}

// SetSearchParams records the committed query string and pushes it to
// the connected client. Without a client the snapshot is still updated,
// so a later connection starts from the committed state.
func (b *Bridge) SetSearchParams(params *query.Params) {
	b.mu.Lock()
	b.params = params.Clone()
	conn := b.conn
	raw := b.params.Encode()
	b.mu.Unlock()

	if conn == nil {
		return
	}
	if err := b.writeFrame(conn, frame{Type: frameURLReplace, Query: raw}); err != nil {
		b.logger.Error("url_replace write error", "error", err)
	}
}

// writeFrame serializes and writes a frame under the write lock.
func (b *Bridge) writeFrame(conn *websocket.Conn, f frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// Handler returns the HTTP handler that upgrades the connection and
// runs the read loop until the client disconnects.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			b.logger.Error("websocket upgrade error", "error", err)
			return
		}
		conn.SetReadLimit(maxFrameSize)

		b.mu.Lock()
		if b.conn != nil {
			b.conn.Close()
		}
		b.conn = conn
		b.mu.Unlock()

		b.readLoop(conn)
	})
}

// readLoop reads frames until the connection closes or errors.
func (b *Bridge) readLoop(conn *websocket.Conn) {
	defer func() {
		b.mu.Lock()
		if b.conn == conn {
			b.conn = nil
		}
		b.mu.Unlock()
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				b.logger.Error("read error", "error", err)
			}
			return
		}

		var f frame
		if err := json.Unmarshal(msg, &f); err != nil {
			b.logger.Error("frame decode error", "error", err)
			continue
		}

		switch f.Type {
		case frameURL:
			b.mu.Lock()
			b.params = query.Parse(f.Query)
			b.mu.Unlock()
			b.fireChange()

		default:
			b.logger.Warn("unknown frame type", "type", f.Type)
		}
	}
}

func (b *Bridge) fireChange() {
	b.changeMu.Lock()
	fn := b.onChange
	b.changeMu.Unlock()
	if fn != nil {
		fn()
	}
}
