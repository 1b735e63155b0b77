package entities

import "time"

// Connection is a live WebSocket connection record used for best-effort
// push of new posts to online followers. Records expire via TTL.
type Connection struct {
	ConnectionID string
	UserID       string
	Endpoint     string
	ConnectedAt  time.Time
	TTL          int64
}
