package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/panaderia-api/internal/application/stock"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

var _ stock.Notifier = (*Hub)(nil)

// Client es lo que el hub necesita de una conexión; *websocket.Conn lo cumple.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// StockEvent es el mensaje que reciben los clientes del feed de stock.
type StockEvent struct {
	Type    string              `json:"type"`
	At      time.Time           `json:"at"`
	Changes []stock.StockChange `json:"changes"`
}

// Hub reparte los cambios de stock confirmados a los clientes websocket conectados.
type Hub struct {
	clients    map[Client]bool
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
	onCount    func(n int)
}

// NewHub crea el hub. onCount (opcional) recibe la cantidad de clientes tras cada alta o baja.
func NewHub(log *logger.Logger, onCount func(n int)) *Hub {
	if onCount == nil {
		onCount = func(int) {}
	}
	return &Hub{
		clients:    make(map[Client]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log.Component("ws"),
		onCount:    onCount,
	}
}

// Run atiende altas, bajas y difusiones hasta que ctx se cancela. Se llama una sola vez.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for c := range h.clients {
				_ = c.Close()
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			return

		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mutex.Unlock()
			h.onCount(n)
			h.log.Debug().Int("clients", n).Msg("cliente ws conectado")

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				_ = c.Close()
			}
			n := len(h.clients)
			h.mutex.Unlock()
			h.onCount(n)

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = c.Close()
					delete(h.clients, c)
				}
			}
			n := len(h.clients)
			h.mutex.Unlock()
			h.onCount(n)
		}
	}
}

// Register agrega un cliente. Devuelve false si el hub ya se detuvo; en ese caso cierra la conexión.
func (h *Hub) Register(c Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		_ = c.Close()
		return false
	}
}

// Unregister quita un cliente y cierra la conexión. No bloquea si el hub ya se detuvo.
func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish implementa stock.Notifier. Si el buffer está lleno el evento se descarta:
// el motor nunca espera a los clientes.
func (h *Hub) Publish(changes []stock.StockChange) {
	msg, err := json.Marshal(StockEvent{Type: "stock_changed", At: time.Now().UTC(), Changes: changes})
	if err != nil {
		h.log.Error().Err(err).Msg("serializar evento de stock")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Int("changes", len(changes)).Msg("feed de stock saturado, evento descartado")
	}
}

// Handler atiende una conexión hasta que el cliente se desconecta.
func (h *Hub) Handler(c *websocket.Conn) {
	if !h.Register(c) {
		return
	}
	defer h.Unregister(c)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
