package domain

import "encoding/json"

// Event names exchanged over the websocket channel, matching the web client.
const (
	EventJoinRoom              = "join-room"
	EventAssignPlayerName      = "assign-player-name"
	EventPlayersInRoom         = "players-in-room"
	EventNewPlayer             = "new-player"
	EventClientReady           = "client-ready"
	EventGetCanvasState        = "get-canvas-state"
	EventCanvasState           = "canvas-state"
	EventCanvasStateFromServer = "canvas-state-from-server"
	EventDrawLine              = "draw-line"
	EventClear                 = "clear"
	EventPlayerLeft            = "player-left"
	EventLeaveRoom             = "leave-room"
)

// Envelope wraps every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinRoom struct {
	RoomID     string `json:"roomID"`
	PlayerName string `json:"playerName"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DrawLine is one stroke segment. PrevPoint is null at the start of a
// stroke; the payload is relayed as received, never validated.
type DrawLine struct {
	PrevPoint      *Point  `json:"prevPoint"`
	CurrPoint      *Point  `json:"currPoint"`
	Color          string  `json:"color"`
	BrushThickness float64 `json:"brushThickness"`
}

type PlayerLeft struct {
	PlayerName string   `json:"playerName"`
	Players    []string `json:"players"`
}

type RoomInfo struct {
	RoomID      string `json:"roomID"`
	PlayerCount int    `json:"playerCount"`
}

// Encode marshals payload into an Envelope. A nil payload produces an
// envelope with no data field.
func Encode(event string, payload any) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}

type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Broadcaster owns the room and connection registries. Only Join and Leave
// mutate membership; Ready, Snapshot and Relay are read-only fan-out.
type Broadcaster interface {
	Join(conn Connection, roomID, playerName string)
	Leave(conn Connection)
	Ready(conn Connection)
	Snapshot(sender Connection, state json.RawMessage)
	Relay(sender Connection, event string, data []byte)
}

type MessageHandler interface {
	Handle(conn Connection, data []byte)
}
