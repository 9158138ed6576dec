package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/events"
	"github.com/pageza/alchemorsel-discover/backend/internal/models"
	"github.com/pageza/alchemorsel-discover/backend/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// snapshotMessage is the type of the first message sent on connect.
	snapshotMessage = "snapshot"
	// sendBuffer bounds the pending notifications per connection.
	sendBuffer = 16
)

// StreamMessage is pushed to websocket clients whenever state changes.
type StreamMessage struct {
	Type        string          `json:"type"`
	Results     []models.Recipe `json:"results"`
	ActiveCount int             `json:"active_count"`
}

// ResultStream pushes the recomputed result set to websocket clients on every bus event.
type ResultStream struct {
	filters  service.IFilterService
	bus      *events.Bus
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewResultStream creates a ResultStream accepting connections from allowedOrigins.
// An empty list or "*" accepts any origin.
func NewResultStream(filters service.IFilterService, bus *events.Bus, allowedOrigins []string, logger *zap.Logger) *ResultStream {
	return &ResultStream{
		filters: filters,
		bus:     bus,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (s *ResultStream) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", s.Handle)
}

// Handle upgrades the request and streams results until the client goes away.
func (s *ResultStream) Handle(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Notifications carry only the event type; results are computed when the
	// message is written so a slow client always receives current state.
	send := make(chan string, sendBuffer)
	done := make(chan struct{})
	send <- snapshotMessage

	unsubscribe := s.bus.SubscribeAll(func(e events.Event) {
		select {
		case <-done:
		case send <- string(e.Type):
		default:
			// Dropped; a later message carries the same state.
		}
	})
	defer unsubscribe()

	go s.writeLoop(conn, send, done)
	s.readLoop(conn)
	close(done)
}

// readLoop discards client messages and returns when the connection closes.
func (s *ResultStream) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket closed", zap.Error(err))
			}
			return
		}
	}
}

func (s *ResultStream) writeLoop(conn *websocket.Conn, send <-chan string, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case typ := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(s.message(typ)); err != nil {
				s.logger.Debug("websocket write failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}

func (s *ResultStream) message(typ string) StreamMessage {
	return StreamMessage{
		Type:        typ,
		Results:     s.filters.Results(),
		ActiveCount: s.filters.ActiveCount(),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[o] = struct{}{}
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
