package game

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/typerace-backend/internal"
)

// fakeConn records every broadcast through the real JSON encoding so
// tests also cover the wire tags.
type fakeConn struct {
	mu     sync.Mutex
	closed bool
	msgs   []recordedMsg
}

type recordedMsg struct {
	Type string
	Data json.RawMessage
}

func (c *fakeConn) WriteJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var m internal.Message[json.RawMessage]
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, recordedMsg{Type: m.Type, Data: m.Data})
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count(eventType string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.msgs {
		if m.Type == eventType {
			n++
		}
	}
	return n
}

func (c *fakeConn) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.msgs))
	for _, m := range c.msgs {
		out = append(out, m.Type)
	}
	return out
}

// allInts decodes every payload of the given event type as an int, in
// delivery order.
func (c *fakeConn) allInts(t *testing.T, eventType string) []int {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, 0, len(c.msgs))
	for _, m := range c.msgs {
		if m.Type != eventType {
			continue
		}
		var v int
		require.NoError(t, json.Unmarshal(m.Data, &v))
		out = append(out, v)
	}
	return out
}

// last decodes the payload of the most recent event of the given type.
func (c *fakeConn) last(t *testing.T, eventType string, into any) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.msgs) - 1; i >= 0; i-- {
		if c.msgs[i].Type != eventType {
			continue
		}
		if into != nil {
			require.NoError(t, json.Unmarshal(c.msgs[i].Data, into))
		}
		return
	}
	t.Fatalf("no %q event recorded, got %v", eventType, c.types())
}

func newTestRegistry() (*Registry, *clockwork.FakeClock) {
	clk := clockwork.NewFakeClock()
	return NewRegistry(clk), clk
}

// joinPlayer runs the full join protocol.
func joinPlayer(t *testing.T, reg *Registry, key, username string) (*internal.Player, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	player := &internal.Player{Username: username, Conn: conn}
	require.NoError(t, reg.Join(key, player))
	return player, conn
}

// seatPlayer appends a member directly, bypassing the countdown trigger,
// for tests that drive the race phase by hand.
func seatPlayer(reg *Registry, key, username string) (*internal.Player, *fakeConn) {
	room := reg.Ensure(key)
	conn := &fakeConn{}
	player := &internal.Player{Username: username, Conn: conn, Room: room}
	room.Mu.Lock()
	room.Players = append(room.Players, player)
	room.Mu.Unlock()
	return player, conn
}

func roomGameStarted(room *internal.Room) bool {
	room.Mu.Lock()
	defer room.Mu.Unlock()
	return room.GameStarted
}

func roomLobbyOpen(room *internal.Room) bool {
	room.Mu.Lock()
	defer room.Mu.Unlock()
	return room.LobbyOpen
}
