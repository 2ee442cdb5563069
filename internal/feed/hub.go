// Package feed streams simulation frames to external renderers over
// websockets and collects their input commands.
package feed

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/broadside/sim/internal/sim"
	"github.com/broadside/sim/internal/vmath"
)

const writeTimeout = 2 * time.Second

// Signals a client may send to drive the session lifecycle.
const (
	SignalBegin   = "begin"
	SignalRestart = "restart"
	SignalPause   = "pause"
	SignalResume  = "resume"
)

// Point is a world-space position on the wire.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Command is one message from a renderer. A message with a Signal drives the
// session lifecycle and its intent fields are ignored; any other message
// replaces the current input intent.
type Command struct {
	Signal string `json:"signal,omitempty"`
	Move   *Point `json:"move,omitempty"`
	Aim    *Point `json:"aim,omitempty"`
	Fire   bool   `json:"fire,omitempty"`
}

// Input converts the intent part of the command.
func (c Command) Input() sim.Input {
	var in sim.Input
	if c.Move != nil {
		in.Move = vmath.V(c.Move.X, c.Move.Y)
	}
	if c.Aim != nil {
		in.Aim = vmath.V(c.Aim.X, c.Aim.Y)
		in.HasAim = true
	}
	in.Fire = c.Fire
	return in
}

type client struct {
	id   uint64
	conn *websocket.Conn
	out  chan sim.Frame
}

// Hub fans frames out to connected renderers. Publish is called from the
// simulation goroutine and never blocks: a client whose queue is full is
// dropped.
type Hub struct {
	mu       sync.Mutex
	clients  map[uint64]*client
	nextID   atomic.Uint64
	commands chan Command
	outSize  int
	log      *zap.Logger
}

func NewHub(outSize int, log *zap.Logger) *Hub {
	if outSize <= 0 {
		outSize = 1
	}
	return &Hub{
		clients:  make(map[uint64]*client),
		commands: make(chan Command, 64),
		outSize:  outSize,
		log:      log,
	}
}

// Commands returns the channel of commands received from all clients.
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// Clients is the number of connected renderers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues f for every client and returns how many accepted it.
func (h *Hub) Publish(f sim.Frame) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for id, c := range h.clients {
		select {
		case c.out <- f:
			n++
		default:
			h.log.Warn("feed queue full, dropping slow client", zap.Uint64("client", id))
			delete(h.clients, id)
			close(c.out)
		}
	}
	return n
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and serves the client until either side
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error("feed accept failed", zap.Error(err))
		return
	}
	c := &client{
		id:   h.nextID.Add(1),
		conn: conn,
		out:  make(chan sim.Frame, h.outSize),
	}
	log := h.log.With(zap.Uint64("client", c.id))
	log.Info("renderer connected", zap.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	h.add(c)
	defer h.remove(c)

	go h.readLoop(ctx, cancel, c, log)
	h.writeLoop(ctx, c, log)
	log.Info("renderer disconnected")
}

func (h *Hub) readLoop(ctx context.Context, cancel context.CancelFunc, c *client, log *zap.Logger) {
	defer cancel()
	for {
		var cmd Command
		if err := wsjson.Read(ctx, c.conn, &cmd); err != nil {
			if !isClosed(err) {
				log.Debug("feed read failed", zap.Error(err))
			}
			return
		}
		select {
		case h.commands <- cmd:
		default:
			log.Debug("command queue full, dropping command")
		}
	}
}

func (h *Hub) writeLoop(ctx context.Context, c *client, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			c.conn.Close(websocket.StatusNormalClosure, "")
			return
		case f, ok := <-c.out:
			if !ok {
				c.conn.Close(websocket.StatusPolicyViolation, "too slow")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, c.conn, f)
			cancel()
			if err != nil {
				if !isClosed(err) {
					log.Debug("feed write failed", zap.Error(err))
				}
				return
			}
		}
	}
}

func isClosed(err error) bool {
	return errors.Is(err, context.Canceled) || websocket.CloseStatus(err) != -1
}
