package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"roulette-miniapp-backend/internal/models"
	"roulette-miniapp-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler maintains connected clients and pushes round
// lifecycle events to all of them. It is the engine's Broadcaster.
type WebSocketHandler struct {
	engine       *services.RoundEngine
	redisService *services.RedisService
	hub          *WebSocketHub
	log          *zap.Logger
}

type WebSocketHub struct {
	clients    map[string]*websocket.Conn
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	log        *zap.Logger
}

type Client struct {
	AccountID string
	Conn      *websocket.Conn
}

type Message struct {
	Type      string      `json:"type"`
	AccountID string      `json:"account_id,omitempty"`
	Data      interface{} `json:"data"`
}

func NewWebSocketHandler(engine *services.RoundEngine, redisService *services.RedisService, log *zap.Logger) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
		log:        log,
	}

	go hub.run()

	return &WebSocketHandler{
		engine:       engine,
		redisService: redisService,
		hub:          hub,
		log:          log,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	accountID := c.GetString("account_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		AccountID: accountID,
		Conn:      conn,
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendBalance(client)
	h.sendStatus(client)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.sendPong(client)
	case "STATUS":
		h.sendStatus(client)
	}
}

func (h *WebSocketHandler) sendBalance(client *Client) {
	wallet, err := h.redisService.GetWallet(client.AccountID)
	if err != nil {
		h.log.Warn("failed to get wallet for websocket", zap.Error(err))
		return
	}

	client.Conn.WriteJSON(Message{
		Type: "BALANCE_UPDATE",
		Data: gin.H{
			"balance":       wallet.Balance,
			"total_wagered": wallet.TotalWagered,
			"total_won":     wallet.TotalWon,
		},
	})
}

// sendStatus pushes the round snapshot without the caller's pending
// result; read-once delivery stays with the status endpoint.
func (h *WebSocketHandler) sendStatus(client *Client) {
	status := h.engine.Status("")
	client.Conn.WriteJSON(Message{
		Type: "ROUND_STATUS",
		Data: status,
	})
}

func (h *WebSocketHandler) sendPong(client *Client) {
	client.Conn.WriteJSON(Message{
		Type: "PONG",
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	})
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.AccountID] = client.Conn
			hub.log.Info("websocket client registered", zap.String("account", client.AccountID))

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.AccountID]; ok {
				delete(hub.clients, client.AccountID)
				hub.log.Info("websocket client unregistered", zap.String("account", client.AccountID))
			}

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)
		}
	}
}

func (hub *WebSocketHub) broadcastMessage(message *Message) {
	if message.AccountID != "" {
		if conn, ok := hub.clients[message.AccountID]; ok {
			conn.WriteJSON(message)
		}
		return
	}

	for _, conn := range hub.clients {
		conn.WriteJSON(message)
	}
}

// send queues a broadcast without ever blocking the round engine.
func (hub *WebSocketHub) send(message *Message) {
	select {
	case hub.broadcast <- message:
	default:
		hub.log.Warn("websocket broadcast queue full, dropping event", zap.String("type", message.Type))
	}
}

// RoundOpen implements services.Broadcaster.
func (h *WebSocketHandler) RoundOpen(round int64, closesAt, resolvesAt time.Time) {
	h.hub.send(&Message{
		Type: "ROUND_OPEN",
		Data: gin.H{
			"round":       round,
			"closes_at":   closesAt.Unix(),
			"resolves_at": resolvesAt.Unix(),
		},
	})
}

// RoundResolved implements services.Broadcaster.
func (h *WebSocketHandler) RoundResolved(round int64, outcome models.Outcome) {
	h.hub.send(&Message{
		Type: "ROUND_RESOLVED",
		Data: gin.H{
			"round":   round,
			"outcome": outcome,
		},
	})
}
