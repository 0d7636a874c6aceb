package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"deskpilot/pkg/channels"
	"deskpilot/pkg/config"
	"deskpilot/pkg/gateway"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for decoupled UI
	},
}

// WebConfig holds the websocket front end settings.
type WebConfig struct {
	Port int `json:"port"` // Default: 9453
}

// incomingMessage is what a browser UI sends per instruction.
type incomingMessage struct {
	Text string `json:"text"`
	User string `json:"user,omitempty"`
}

// outgoingMessage mirrors the Result back to the UI.
type outgoingMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SafeConn serializes writes on a websocket connection; gorilla allows only
// one concurrent writer.
type SafeConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (sc *SafeConn) WriteJSONSafe(v any) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return sc.Conn.WriteMessage(websocket.TextMessage, data)
}

// WebChannel exposes the interpreter over a websocket endpoint so a browser
// UI can drive the desktop.
type WebChannel struct {
	config      WebConfig
	server      *http.Server
	connections map[string]*SafeConn // UserID -> connection
	mu          sync.RWMutex
}

// NewWebChannel creates a web channel.
func NewWebChannel(cfg WebConfig) *WebChannel {
	if cfg.Port == 0 {
		cfg.Port = 9453
	}
	return &WebChannel{
		config:      cfg,
		connections: make(map[string]*SafeConn),
	}
}

func (c *WebChannel) ID() string {
	return "web"
}

func (c *WebChannel) Start(ctx gateway.ChannelContext) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		c.handleWebSocket(w, r, ctx)
	})

	addr := fmt.Sprintf(":%d", c.config.Port)
	c.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	slog.Info("Web API listening", "port", c.config.Port)

	go func() {
		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Web API server error", "error", err)
		}
	}()

	return nil
}

func (c *WebChannel) Stop() error {
	if c.server != nil {
		return c.server.Close()
	}
	return nil
}

func (c *WebChannel) Send(session gateway.SessionContext, message string, success bool) error {
	c.mu.RLock()
	conn, ok := c.connections[session.UserID]
	c.mu.RUnlock()

	if !ok {
		return fmt.Errorf("web user %s not connected", session.UserID)
	}

	return conn.WriteJSONSafe(outgoingMessage{Success: success, Message: message})
}

func (c *WebChannel) handleWebSocket(w http.ResponseWriter, r *http.Request, ctx gateway.ChannelContext) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	userID := r.RemoteAddr
	safe := &SafeConn{Conn: conn}

	c.mu.Lock()
	c.connections[userID] = safe
	c.mu.Unlock()

	slog.Info("Web client connected", "user", userID)

	defer func() {
		c.mu.Lock()
		delete(c.connections, userID)
		c.mu.Unlock()
		conn.Close()
		slog.Info("Web client disconnected", "user", userID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg incomingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			safe.WriteJSONSafe(outgoingMessage{Success: false, Message: "Malformed message"})
			continue
		}
		if msg.Text == "" {
			continue
		}

		username := msg.User
		if username == "" {
			username = userID
		}

		ctx.OnInstruction("web", &gateway.Instruction{
			Session: gateway.SessionContext{
				ChannelID: "web",
				UserID:    userID,
				ChatID:    userID,
				Username:  username,
			},
			Text: msg.Text,
		})
	}
}

// factory

type webFactory struct{}

func (f *webFactory) Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (gateway.Channel, error) {
	var cfg WebConfig
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, err
		}
	}
	return NewWebChannel(cfg), nil
}

func init() {
	channels.RegisterChannel("web", &webFactory{})
}
