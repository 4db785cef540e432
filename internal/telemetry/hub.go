package telemetry

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 64
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message - кадр ленты событий.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

// Hub рассылает события игры всем подключенным наблюдателям.
type Hub struct {
	clients map[*client]bool
	lock    sync.Mutex
	logger  *log.Logger
	// hello вызывается для нового клиента; его кадр уходит первым.
	hello func() (Message, bool)
}

// NewHub создает пустой хаб.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{clients: make(map[*client]bool), logger: logger}
}

// Clients возвращает число подключенных клиентов.
func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// Broadcast кодирует сообщение и рассылает его. Медленные клиенты отключаются.
func (h *Hub) Broadcast(m Message) {
	msg, err := json.Marshal(m)
	if err != nil {
		h.logger.Printf("WARNING: encoding %s message: %v", m.Type, err)
		return
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.dropLocked(c)
		}
	}
}

// Close отключает всех клиентов.
func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()
	for c := range h.clients {
		h.dropLocked(c)
	}
}

func (h *Hub) dropLocked(c *client) {
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) drop(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.dropLocked(c)
}

// ServeWS поднимает websocket и держит соединение, пока клиент не уйдет.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("WARNING: websocket upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer), id: r.RemoteAddr}

	h.lock.Lock()
	h.clients[c] = true
	if h.hello != nil {
		if m, ok := h.hello(); ok {
			if msg, err := json.Marshal(m); err == nil {
				c.send <- msg
			}
		}
	}
	h.lock.Unlock()

	go h.writer(c)
	go h.reader(c)
}

// reader только следит за закрытием: входящие кадры игнорируются.
func (h *Hub) reader(c *client) {
	defer func() {
		h.drop(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("WARNING: websocket %s: %v", c.id, err)
			}
			return
		}
	}
}

func (h *Hub) writer(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
