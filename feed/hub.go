// Package feed streams run progress to websocket clients
package feed

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/lixenwraith/maze-runner/genetic/runner"
	"github.com/lixenwraith/maze-runner/parameter"
)

const (
	TypeGeneration = "generation"
	TypeSummary    = "summary"
)

// Message is one JSON frame sent to clients
type Message struct {
	Type  string `json:"type"`
	RunID string `json:"run_id"`

	Generation *Progress `json:"generation,omitempty"`
	Summary    *Summary  `json:"summary,omitempty"`
}

type Progress struct {
	Index             int     `json:"index"`
	BestPrimary       int     `json:"best_primary"`
	BestSecondary     int     `json:"best_secondary"`
	BestEverPrimary   int     `json:"best_ever_primary"`
	BestEverSecondary int     `json:"best_ever_secondary"`
	Mean              float64 `json:"mean"`
	StdDev            float64 `json:"std_dev"`
	Survivors         int     `json:"survivors"`
	Improved          bool    `json:"improved"`
}

type Summary struct {
	Generations int    `json:"generations"`
	Best        string `json:"best"`
	Primary     int    `json:"primary"`
	Secondary   int    `json:"secondary"`
	AtGoal      bool   `json:"at_goal"`
}

// ProgressMessage converts one generation record
func ProgressMessage(runID string, rec runner.Record) Message {
	return Message{
		Type:  TypeGeneration,
		RunID: runID,
		Generation: &Progress{
			Index:             rec.Generation,
			BestPrimary:       rec.BestScore.Primary,
			BestSecondary:     rec.BestScore.Secondary,
			BestEverPrimary:   rec.BestEverScore.Primary,
			BestEverSecondary: rec.BestEverScore.Secondary,
			Mean:              rec.Stats.Mean,
			StdDev:            rec.Stats.StdDev,
			Survivors:         rec.Survivors,
			Improved:          rec.Improved,
		},
	}
}

// SummaryMessage converts a finished report
func SummaryMessage(runID string, report runner.Report) Message {
	return Message{
		Type:  TypeSummary,
		RunID: runID,
		Summary: &Summary{
			Generations: report.Generations,
			Best:        report.Best.String(),
			Primary:     report.Fitness.Primary,
			Secondary:   report.Fitness.Secondary,
			AtGoal:      report.Assessment.AtGoal,
		},
	}
}

type client struct {
	send chan Message
}

// Hub fans messages out to connected clients.
// Late joiners first receive the retained history; a client whose buffer is full misses messages.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	history []Message
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Handler serves the websocket endpoint
func (h *Hub) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

// Publish queues msg for every client without blocking
func (h *Hub) Publish(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	if len(h.history) >= parameter.FeedHistoryLimit {
		h.history = h.history[1:]
	}
	h.history = append(h.history, msg)

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("feed: client buffer full, dropping %s message", msg.Type)
		}
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and drops further messages
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// register adds c and returns the backlog it must send first; both happen under one lock so nothing is lost
func (h *Hub) register(c *client) ([]Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, false
	}
	h.clients[c] = struct{}{}
	backlog := make([]Message, len(h.history))
	copy(backlog, h.history)
	return backlog, true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) serve(ws *websocket.Conn) {
	defer ws.Close()

	c := &client{send: make(chan Message, parameter.FeedClientBuffer)}
	backlog, ok := h.register(c)
	if !ok {
		return
	}
	defer h.unregister(c)

	// Clients only listen; a read error means they went away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		var discard string
		for {
			if err := websocket.Message.Receive(ws, &discard); err != nil {
				return
			}
		}
	}()

	for _, msg := range backlog {
		if err := websocket.JSON.Send(ws, msg); err != nil {
			return
		}
	}

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := websocket.JSON.Send(ws, msg); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

// Serve runs the feed on addr until ctx is done
func Serve(ctx context.Context, addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(parameter.FeedPath, hub.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), parameter.FeedShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
