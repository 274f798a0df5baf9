package websocket

// OutgoingMessage is one server->client event envelope. Data carries
// the event-specific payload: state projections, card reveals, typed
// errors.
type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// IncomingMessage is one client->server action. From is stamped from
// the connection's authenticated player id, never read off the wire.
type IncomingMessage struct {
	From  string      `json:"from"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
