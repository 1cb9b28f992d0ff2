package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	Done chan struct{}
}

// Hub tracks subscribers per PDF document plus a global channel for the
// study-material list page.
type Hub struct {
	Clients       map[string]map[*websocket.Conn]*Client
	GlobalClients map[*websocket.Conn]*Client
	Mutex         sync.RWMutex
}

var H = Hub{
	Clients:       make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

// PDFStatusUpdate reports the processing state of one uploaded document.
type PDFStatusUpdate struct {
	PDFID    string  `json:"pdf_id"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Error    string  `json:"error,omitempty"`
}

// Register subscribes conn to one document's updates. The returned client's
// Done channel closes when the peer hangs up; the read pump is the only
// goroutine reading from conn.
func (h *Hub) Register(pdfID string, conn *websocket.Conn) *Client {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[pdfID]; !ok {
		h.Clients[pdfID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
		Done: make(chan struct{}),
	}
	h.Clients[pdfID][conn] = client

	go h.readPump(pdfID, client)
	go h.writePump(client)
	return client
}

func (h *Hub) RegisterGlobal(conn *websocket.Conn) *Client {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
		Done: make(chan struct{}),
	}
	h.GlobalClients[conn] = client

	go h.readGlobalPump(client)
	go h.writePump(client)
	return client
}

func (h *Hub) Broadcast(pdfID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[pdfID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) BroadcastGlobal(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// SendStatusUpdate pushes a processing-state change to subscribers of one
// document.
func SendStatusUpdate(pdfID, status string, progress float64, errorMsg string) {
	update := PDFStatusUpdate{
		PDFID:    pdfID,
		Status:   status,
		Progress: progress,
		Error:    errorMsg,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(pdfID, data)
}

// BroadcastPDFListChanged nudges list pages to refetch.
func BroadcastPDFListChanged() {
	H.BroadcastGlobal([]byte(`{"type": "pdf_list_changed"}`))
}

func (h *Hub) Unregister(pdfID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[pdfID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, pdfID)
		}
	}
}

func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

// GetStats reports subscriber counts for the health endpoint.
func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	perDocument := 0
	for _, clients := range h.Clients {
		perDocument += len(clients)
	}
	return map[string]int{
		"document_clients": perDocument,
		"global_clients":   len(h.GlobalClients),
	}
}

func (h *Hub) readPump(pdfID string, client *Client) {
	defer func() {
		h.Unregister(pdfID, client.Conn)
		close(client.Done)
	}()
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) readGlobalPump(client *Client) {
	defer func() {
		h.UnregisterGlobal(client.Conn)
		close(client.Done)
	}()
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
