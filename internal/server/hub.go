package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/denisecase/rockfit/internal/leaderboard"
	"github.com/denisecase/rockfit/internal/protocol"
)

const (
	broadcastInterval = 100 * time.Millisecond
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingInterval      = (pongWait * 9) / 10
	maxMessageSize    = 65536
	topScores         = 10
	storeTimeout      = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Session is one websocket connection: either a player streaming game
// states or a watcher receiving spectate broadcasts.
type Session struct {
	ID      string
	Name    string
	Watcher bool
	Conn    *websocket.Conn
	sendCh  chan []byte

	// Latest state streamed by this session
	mu    sync.Mutex
	state *protocol.StatePayload
}

func newSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		ID:     id,
		Conn:   conn,
		sendCh: make(chan []byte, 256),
	}
}

// writePump sends messages from sendCh to the WebSocket.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.sendCh:
			s.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// send marshals an envelope and queues it.
func (s *Session) send(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("marshal error for session %s: %v", s.ID, err)
		return
	}
	select {
	case s.sendCh <- data:
	default:
		log.Printf("send channel full for session %s, dropping message", s.ID)
	}
}

func (s *Session) setState(p *protocol.StatePayload) {
	s.mu.Lock()
	s.state = p
	s.mu.Unlock()
}

func (s *Session) getState() *protocol.StatePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hub tracks live sessions, fans their game states out to watchers,
// and records finished games on the leaderboard.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    *leaderboard.Store
	stopCh   chan struct{}
}

func NewHub(store *leaderboard.Store) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		store:    store,
		stopCh:   make(chan struct{}),
	}
}

func (h *Hub) addSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
}

func (h *Hub) removeSession(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		close(s.sendCh)
		delete(h.sessions, id)
	}
}

// Run drives the spectate broadcast loop until Stop is called.
func (h *Hub) Run() {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.broadcastSpectate()
		case <-h.stopCh:
			return
		}
	}
}

// Stop terminates the broadcast loop.
func (h *Hub) Stop() {
	close(h.stopCh)
}

// broadcastSpectate sends every watcher the current state of every
// playing session.
func (h *Hub) broadcastSpectate() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var games []protocol.GameView
	var watchers []*Session
	for _, s := range h.sessions {
		if s.Watcher {
			watchers = append(watchers, s)
			continue
		}
		state := s.getState()
		if state == nil {
			continue
		}
		games = append(games, protocol.GameView{
			SessionID:  s.ID,
			PlayerName: s.Name,
			Score:      state.Score,
			Level:      state.Level,
			Lines:      state.Lines,
			Combo:      state.Combo,
			Alive:      state.Alive,
			Width:      state.Width,
			Height:     state.Height,
			Board:      state.Board,
		})
	}

	if len(watchers) == 0 || len(games) == 0 {
		return
	}

	env := protocol.Envelope{
		Type:    protocol.MsgSpectate,
		Payload: protocol.SpectatePayload{Games: games},
	}
	for _, w := range watchers {
		w.send(env)
	}
}

// sendScores sends the current leaderboard top to one session.
func (h *Hub) sendScores(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entries, err := h.store.Top(ctx, topScores)
	if err != nil {
		log.Printf("leaderboard query failed: %v", err)
		s.send(protocol.Envelope{
			Type:    protocol.MsgError,
			Payload: protocol.ErrorPayload{Message: "leaderboard unavailable"},
		})
		return
	}

	rows := make([]protocol.ScoreRow, len(entries))
	for i, e := range entries {
		rows[i] = protocol.ScoreRow{
			Player:    e.Player,
			Score:     e.Score,
			Level:     e.Level,
			Lines:     e.Lines,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
	}
	s.send(protocol.Envelope{
		Type:    protocol.MsgScores,
		Payload: protocol.ScoresPayload{Top: rows},
	})
}

// HandleWS upgrades an HTTP request and services the connection until
// it closes.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	s := newSession(uuid.NewString(), conn)
	h.addSession(s)

	s.send(protocol.Envelope{
		Type:    protocol.MsgWelcome,
		Payload: protocol.WelcomePayload{SessionID: s.ID},
	})

	go s.writePump()
	h.readPump(s)

	h.removeSession(s.ID)
	log.Printf("session %s (%s) disconnected", s.ID, s.Name)
}

// readPump reads messages from the WebSocket and dispatches them.
func (h *Hub) readPump(s *Session) {
	defer s.Conn.Close()

	s.Conn.SetReadLimit(maxMessageSize)
	s.Conn.SetReadDeadline(time.Now().Add(pongWait))
	s.Conn.SetPongHandler(func(string) error {
		s.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := s.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error for %s: %v", s.ID, err)
			}
			return
		}

		var env protocol.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("unmarshal error from %s: %v", s.ID, err)
			continue
		}

		h.handleMessage(s, env, message)
	}
}

// handleMessage dispatches one client message.
func (h *Hub) handleMessage(s *Session, env protocol.Envelope, raw []byte) {
	switch env.Type {
	case protocol.MsgHello:
		var payload protocol.HelloPayload
		if extractPayload(raw, &payload) == nil {
			s.Name = payload.PlayerName
			log.Printf("session %s playing as %q", s.ID, s.Name)
		}

	case protocol.MsgWatch:
		s.Watcher = true
		log.Printf("session %s watching", s.ID)
		h.sendScores(s)

	case protocol.MsgState:
		var payload protocol.StatePayload
		if extractPayload(raw, &payload) == nil {
			s.setState(&payload)
		}

	case protocol.MsgFinished:
		var payload protocol.FinishedPayload
		if extractPayload(raw, &payload) == nil {
			h.recordFinished(s, payload)
		}

	default:
		log.Printf("unknown message type from %s: %s", s.ID, env.Type)
	}
}

// recordFinished persists a final score and replies with the updated
// leaderboard.
func (h *Hub) recordFinished(s *Session, payload protocol.FinishedPayload) {
	name := s.Name
	if name == "" {
		name = "anonymous"
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entry, err := h.store.Add(ctx, name, payload.Score, payload.Level, payload.Lines)
	if err != nil {
		log.Printf("recording score for %s failed: %v", s.ID, err)
		s.send(protocol.Envelope{
			Type:    protocol.MsgError,
			Payload: protocol.ErrorPayload{Message: "score not recorded"},
		})
		return
	}
	log.Printf("recorded %d points for %q (%s)", entry.Score, entry.Player, s.ID)
	h.sendScores(s)
}

// extractPayload re-unmarshals the raw JSON to extract a typed payload.
func extractPayload(raw []byte, target interface{}) error {
	var wrapper struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return err
	}
	return json.Unmarshal(wrapper.Payload, target)
}
