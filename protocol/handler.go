package protocol

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/Shubham-Lal/GuessPaint/domain"
)

// Handler dispatches inbound client events to the room broadcaster. Payloads
// are not validated beyond being well-formed JSON: missing fields propagate
// as zero values, matching the behavior the web client relies on.
type Handler struct {
	rooms domain.Broadcaster
}

func NewHandler(rooms domain.Broadcaster) *Handler {
	return &Handler{rooms: rooms}
}

func (h *Handler) Handle(conn domain.Connection, data []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.WithFields(log.Fields{"conn": conn.ID()}).Warn("Invalid message: ", err)
		return
	}

	switch env.Event {
	case domain.EventJoinRoom:
		var join domain.JoinRoom
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &join); err != nil {
				log.WithFields(log.Fields{"conn": conn.ID()}).Warn("Invalid join payload: ", err)
				return
			}
		}
		h.rooms.Join(conn, join.RoomID, join.PlayerName)

	case domain.EventClientReady:
		h.rooms.Ready(conn)

	case domain.EventCanvasState:
		h.rooms.Snapshot(conn, env.Data)

	case domain.EventDrawLine, domain.EventClear:
		h.rooms.Relay(conn, env.Event, data)

	case domain.EventLeaveRoom:
		// Voluntary leave is handled exactly like transport loss. The
		// connection identity is terminal; rejoining needs a new socket.
		h.rooms.Leave(conn)
		conn.Close()

	default:
		// Game events (word entry, guesses, timers) and anything else
		// unknown are out of scope here and dropped.
		log.WithFields(log.Fields{"conn": conn.ID(), "event": env.Event}).
			Debug("Unhandled event")
	}
}
