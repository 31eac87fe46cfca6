package ui

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"oficina-desk/internal/cache"

	"github.com/gorilla/websocket"
)

// hub bridges cache subscriptions to open pages. Each page connects,
// sends the cache keys it rendered from, and gets an event whenever one
// of those entries transitions; the page then reloads, which is the
// "subscription tick" that turns stale entries into refetches.
type hub struct {
	store    *cache.Store
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newHub(store *cache.Store) *hub {
	return &hub{
		store: store,
		upgrader: websocket.Upgrader{
			// Local UI only; the page is served from the same host.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

type wsEvent struct {
	Key   string `json:"key"`
	State string `json:"state"`
	Stale bool   `json:"stale"`
}

func (h *hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[UI] websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// First frame from the page is the list of keys to watch.
	var keys []cache.Key
	if err := conn.ReadJSON(&keys); err != nil {
		h.drop(conn)
		return
	}

	// Events are funneled through a buffered channel so a cache
	// notification never blocks on a slow page; overflow is dropped, the
	// page just reloads on the next one.
	events := make(chan wsEvent, 16)
	unsubs := make([]func(), 0, len(keys))
	for _, key := range keys {
		key := key
		unsubs = append(unsubs, h.store.Subscribe(key, func(snap cache.Snapshot) {
			select {
			case events <- wsEvent{Key: key.String(), State: snap.State.String(), Stale: snap.Stale}:
			default:
			}
		}))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			// Page sends nothing else; reads only detect disconnect.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer func() {
			for _, unsub := range unsubs {
				unsub()
			}
			h.drop(conn)
		}()
		for {
			select {
			case <-done:
				return
			case ev := <-events:
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}
	}()
}

func (h *hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// closeAll shuts every page connection down, for server shutdown.
func (h *hub) closeAll() {
	h.mu.Lock()
	for conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()
}
