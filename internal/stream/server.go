package stream

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/sansuarezs055/gaslab/internal/gas"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Broadcaster fans frames out to every connected websocket client as JSON.
// It is a gas.FrameSink; a slow or dead client is dropped rather than
// allowed to stall the simulation loop.
type Broadcaster struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{conns: make(map[*websocket.Conn]struct{})}
}

// Handler upgrades incoming requests and registers the connection.
func (b *Broadcaster) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if _, ok := err.(websocket.HandshakeError); !ok {
				log.Println(err)
			}
			return
		}

		b.mu.Lock()
		b.conns[ws] = struct{}{}
		b.mu.Unlock()

		// Drain control frames; ReadMessage failing means the peer left.
		go func() {
			for {
				if _, _, err := ws.ReadMessage(); err != nil {
					b.drop(ws)
					return
				}
			}
		}()
	})
}

func (b *Broadcaster) OnFrame(f gas.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ws := range b.conns {
		if err := ws.WriteJSON(f); err != nil {
			ws.Close()
			delete(b.conns, ws)
		}
	}
	return nil
}

// ClientCount reports how many clients are currently connected.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

func (b *Broadcaster) drop(ws *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ws.Close()
	delete(b.conns, ws)
}

// Close disconnects every client.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ws := range b.conns {
		ws.Close()
		delete(b.conns, ws)
	}
}
