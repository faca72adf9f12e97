package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ashokvas/flowspace/internal/api/middleware"
	"github.com/ashokvas/flowspace/internal/realtime"
	"github.com/ashokvas/flowspace/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is handled by the CORS layer; auth happens upstream
	// (Authorization header or token query parameter).
	CheckOrigin: func(r *http.Request) bool { return true },
}

type subscribeMessage struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

type changeMessage struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
}

// SubscribeHandler serves GET /subscribe: a websocket on which clients
// register the listing topics they render. When a write invalidates a topic
// the client receives a change message and re-fetches the listing over the
// regular HTTP API.
type SubscribeHandler struct {
	hub *realtime.Hub
}

func NewSubscribeHandler(hub *realtime.Hub) *SubscribeHandler {
	return &SubscribeHandler{hub: hub}
}

func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	userID := middleware.GetUserID(r.Context())
	sub := h.hub.NewSubscriber()
	defer h.hub.Remove(sub)

	logger.L().Info("subscriber connected", zap.String("user_id", userID.String()))

	done := make(chan struct{})
	go h.readLoop(conn, sub, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case topic, ok := <-sub.C():
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(changeMessage{Type: "change", Topic: topic}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readLoop consumes subscription requests until the peer goes away.
func (h *SubscribeHandler) readLoop(conn *websocket.Conn, sub *realtime.Subscriber, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg subscribeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Action != "subscribe" {
			continue
		}
		for _, topic := range msg.Topics {
			h.hub.Add(sub, topic)
		}
	}
}
