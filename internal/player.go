package internal

import "sync"

// Conn is the per-player delivery channel. *websocket.Conn satisfies it;
// tests substitute an in-memory recorder.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type Player struct {
	ConnID   string `json:"-"`
	Username string `json:"username"`
	Conn     Conn   `json:"-"`
	Room     *Room  `json:"-"` // avoid circular reference in JSON

	writeMu sync.Mutex
}

// SafeWriteJSON serializes concurrent writes to the same connection.
// gorilla/websocket permits only one writer at a time.
func (p *Player) SafeWriteJSON(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteJSON(v)
}
