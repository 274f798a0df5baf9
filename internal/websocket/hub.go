package websocket

import (
	"log"
	"sync"
)

type HubInterface interface {
	BroadcastToPlayers(playerIDs []string, msg OutgoingMessage)
	ClientByPlayerID(playerID string) (*Client, bool)
	SendToPlayer(playerID string, msg OutgoingMessage)
	Close()
}

type Hub struct {
	clients    map[string]*Client // playerId -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	incoming   chan IncomingMessage
	OnIncoming func(IncomingMessage)
	// connection lifecycle hooks, wired to the game layer so it can
	// flip player connected flags
	OnClientLive func(playerID string)
	OnClientGone func(playerID string)
	quit         chan struct{}
	mu           sync.RWMutex
}

type broadcastReq struct {
	PlayerIDs []string
	Message   OutgoingMessage
}

type sendReq struct {
	PlayerID string
	Message  OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		incoming:   make(chan IncomingMessage),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	log.Println("Hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.PlayerID] = c
			log.Printf("Hub.register -> %s (connected: %d)", c.PlayerID, len(h.clients))
			h.mu.Unlock()
			if h.OnClientLive != nil {
				h.OnClientLive(c.PlayerID)
			}

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.PlayerID]; ok {
				delete(h.clients, c.PlayerID)
				log.Printf("Hub.unregister -> %s (connected: %d)", c.PlayerID, len(h.clients))
				close(c.Send)
			}
			h.mu.Unlock()
			if h.OnClientGone != nil {
				h.OnClientGone(c.PlayerID)
			}

		case req := <-h.broadcast:
			for _, id := range req.PlayerIDs {
				if client, ok := h.clients[id]; ok {
					select {
					case client.Send <- req.Message:
					default:
						// slow client, drop rather than block the hub
					}
				}
			}

		case req := <-h.sendOne:
			if client, ok := h.clients[req.PlayerID]; ok {
				select {
				case client.Send <- req.Message:
				default:
				}
			}

		case req := <-h.incoming:
			// player messages are forwarded untouched to the game layer
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}

		case <-h.quit:
			for _, c := range h.clients {
				close(c.Send)
			}
			return
		}
	}
}

// BroadcastToPlayers delivers one message to every listed player that
// currently holds a connection.
func (h *Hub) BroadcastToPlayers(playerIDs []string, msg OutgoingMessage) {
	h.broadcast <- broadcastReq{
		PlayerIDs: playerIDs,
		Message:   msg,
	}
}

// SendToPlayer delivers one message to a single player.
func (h *Hub) SendToPlayer(playerID string, msg OutgoingMessage) {
	h.sendOne <- sendReq{
		PlayerID: playerID,
		Message:  msg,
	}
}

// ClientByPlayerID looks up a live connection.
func (h *Hub) ClientByPlayerID(playerID string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[playerID]
	return c, ok
}

func (h *Hub) Close() {
	close(h.quit)
}
