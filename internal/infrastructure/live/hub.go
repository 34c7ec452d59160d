package live

import (
	"bytes"
	"context"
	"sync"

	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/usecase"
	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultClientBuffer = 32
	broadcastBuffer     = 256
)

type frame struct {
	room string
	data []byte
}

// Hub keeps one room per tournament slug. Run owns room membership;
// Publish only enqueues and never waits for a subscriber.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan frame
	done       chan struct{}
	stopOnce   sync.Once

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	clientBuffer int
	logger       *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	return &Hub{
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan frame, broadcastBuffer),
		done:         make(chan struct{}),
		rooms:        make(map[string]map[*Client]struct{}),
		clientBuffer: defaultClientBuffer,
		logger:       logger,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// closes every subscriber.
func (h *Hub) Run(ctx context.Context) error {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-h.register:
			h.mu.Lock()
			members, ok := h.rooms[c.room]
			if !ok {
				members = make(map[*Client]struct{})
				h.rooms[c.room] = members
			}
			members[c] = struct{}{}
			size := len(members)
			h.mu.Unlock()
			h.logger.Debug("live client joined", "room", c.room, "clients", size)
		case c := <-h.unregister:
			h.remove(c)
		case f := <-h.broadcast:
			h.deliver(f)
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := members[c]; !ok {
		return
	}
	delete(members, c)
	close(c.send)
	if len(members) == 0 {
		delete(h.rooms, c.room)
	}
	h.logger.Debug("live client left", "room", c.room, "clients", len(members))
}

func (h *Hub) deliver(f frame) {
	h.mu.RLock()
	var slow []*Client
	for c := range h.rooms[f.room] {
		select {
		case c.send <- f.data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("live client too slow, disconnecting", "room", f.room)
		h.remove(c)
	}
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() {
		close(h.done)
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		for c := range members {
			close(c.send)
		}
		delete(h.rooms, room)
	}
}

// Publish encodes event and queues it for its tournament room. When the
// queue is full or the hub has stopped the frame is dropped.
func (h *Hub) Publish(ctx context.Context, event usecase.LiveEvent) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		h.logger.WarnContext(ctx, "encode live event", "type", event.Type, "error", err)
		return
	}
	data := bytes.TrimRight(buf.B, "\n")
	f := frame{room: event.Tournament, data: append([]byte(nil), data...)}

	select {
	case <-h.done:
	case h.broadcast <- f:
	default:
		h.logger.WarnContext(ctx, "live queue full, dropping frame", "room", event.Tournament, "type", event.Type)
	}
}

// Clients reports how many subscribers a room has.
func (h *Hub) Clients(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
