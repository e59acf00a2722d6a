package ws

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/scythe504/typerace-backend/internal"
	"github.com/scythe504/typerace-backend/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler bridges websocket connections to the room registry. One
// handler instance serves all rooms.
type Handler struct {
	registry *game.Registry
}

func NewHandler(registry *game.Registry) *Handler {
	return &Handler{registry: registry}
}

// ServeWS upgrades the request and runs the join protocol. The room key
// comes from the URL path, the display name from the query string, so
// the join coincides with the handshake. Rejected joins get their
// sender-only signal from the registry before the connection is closed.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	roomKey := mux.Vars(r)["room"]
	username := r.URL.Query().Get("username")
	if roomKey == "" || username == "" {
		log.Warn().Str("room", roomKey).Msg("connection missing room or username")
		conn.Close()
		return
	}

	player := &internal.Player{
		ConnID:   uuid.NewString(),
		Username: username,
		Conn:     conn,
	}

	if err := h.registry.Join(roomKey, player); err != nil {
		conn.Close()
		return
	}

	go h.readLoop(player)
}

// readLoop routes inbound events for one connection until it drops. A
// read error is the disconnect notification.
func (h *Handler) readLoop(player *internal.Player) {
	defer func() {
		player.Conn.Close()
		h.registry.Disconnect(player)
	}()

	logger := log.With().
		Str("conn_id", player.ConnID).
		Str("room", player.Room.Key).
		Str("username", player.Username).
		Logger()
	logger.Debug().Msg("read loop started")

	conn := player.Conn.(*websocket.Conn)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("connection closed")
			return
		}

		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Debug().Err(err).Msg("dropping malformed message")
			continue
		}

		switch msg.Type {
		case internal.EventProgressUpdate:
			var data internal.ProgressReportData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				logger.Debug().Err(err).Msg("dropping malformed progress report")
				continue
			}
			h.registry.HandleProgress(player, data.Progress)

		case internal.EventPlayerFinished:
			var data internal.PlayerFinishedData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				logger.Debug().Err(err).Msg("dropping malformed finish report")
				continue
			}
			h.registry.HandleFinish(player, data)

		default:
			logger.Debug().Str("event", msg.Type).Msg("dropping unknown event")
		}
	}
}
