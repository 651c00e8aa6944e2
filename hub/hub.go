package hub

import (
	"encoding/json"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Shubham-Lal/GuessPaint/domain"
	"github.com/Shubham-Lal/GuessPaint/metrics"
)

type member struct {
	conn domain.Connection
	name string
}

type room struct {
	members []member // arrival order
	// connection ID of the most recent client-ready sender, "" if none.
	// Snapshot replies are delivered to this connection only.
	requester string
}

func (r *room) roster() []string {
	names := make([]string, len(r.members))
	for i, m := range r.members {
		names[i] = m.name
	}
	return names
}

// Hub owns the connection and room registries. Rooms are created on first
// join and deleted on last leave; membership is only ever mutated by Join
// and Leave.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
	conns map[string]string // connection ID -> room ID
}

func New() *Hub {
	return &Hub{
		rooms: make(map[string]*room),
		conns: make(map[string]string),
	}
}

func (h *Hub) Join(conn domain.Connection, roomID, playerName string) {
	h.mu.Lock()
	h.conns[conn.ID()] = roomID

	r, exists := h.rooms[roomID]
	if !exists {
		r = &room{}
		h.rooms[roomID] = r
		metrics.RoomsGauge.Inc()
	}

	others := make([]domain.Connection, len(r.members))
	for i, m := range r.members {
		others[i] = m.conn
	}
	r.members = append(r.members, member{conn: conn, name: playerName})
	roster := r.roster()
	h.mu.Unlock()

	metrics.PlayersGauge.Inc()
	log.WithFields(log.Fields{
		"room":    roomID,
		"player":  playerName,
		"conn":    conn.ID(),
		"players": len(roster),
	}).Info("Player joined room")

	h.sendEvent(conn, domain.EventAssignPlayerName, playerName)
	h.fanOut(others, domain.EventNewPlayer, playerName)
	h.sendEvent(conn, domain.EventPlayersInRoom, roster)
}

// Ready records conn as the room's snapshot requester and asks every other
// member for its canvas state. No-op when the room cannot be resolved or
// has no other members.
func (h *Hub) Ready(conn domain.Connection) {
	h.mu.Lock()
	r, _ := h.resolve(conn)
	if r == nil {
		h.mu.Unlock()
		return
	}
	r.requester = conn.ID()

	others := make([]domain.Connection, 0, len(r.members))
	for _, m := range r.members {
		if m.conn.ID() != conn.ID() {
			others = append(others, m.conn)
		}
	}
	h.mu.Unlock()

	if len(others) == 0 {
		return
	}
	h.fanOut(others, domain.EventGetCanvasState, nil)
}

// Snapshot forwards one peer's encoded canvas state to the room's current
// snapshot requester. Replies arriving with no live requester, or from the
// requester itself, are dropped.
func (h *Hub) Snapshot(sender domain.Connection, state json.RawMessage) {
	h.mu.RLock()
	r, _ := h.resolve(sender)
	if r == nil || r.requester == "" || r.requester == sender.ID() {
		h.mu.RUnlock()
		return
	}
	var target domain.Connection
	for _, m := range r.members {
		if m.conn.ID() == r.requester {
			target = m.conn
			break
		}
	}
	h.mu.RUnlock()

	if target == nil {
		return
	}
	h.sendEvent(target, domain.EventCanvasStateFromServer, state)
}

// Relay fans data out to every member of the sender's room, including the
// sender. No-op when the room cannot be resolved; data is forwarded as
// received.
func (h *Hub) Relay(sender domain.Connection, event string, data []byte) {
	h.mu.RLock()
	r, _ := h.resolve(sender)
	if r == nil {
		h.mu.RUnlock()
		return
	}
	targets := make([]domain.Connection, len(r.members))
	for i, m := range r.members {
		targets[i] = m.conn
	}
	h.mu.RUnlock()

	for _, t := range targets {
		if err := t.Send(data); err != nil {
			log.WithFields(log.Fields{"conn": t.ID(), "event": event}).
				Debug("Dropped relayed event")
		}
	}
	metrics.RelayedEventsCounter.WithLabelValues(event).Inc()
}

// Leave removes conn from both registries, deletes the room when it becomes
// empty and notifies the remaining members. Safe to call more than once for
// the same connection.
func (h *Hub) Leave(conn domain.Connection) {
	h.mu.Lock()
	roomID, ok := h.conns[conn.ID()]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.conns, conn.ID())

	r := h.rooms[roomID]
	if r == nil {
		h.mu.Unlock()
		return
	}

	var playerName string
	for i, m := range r.members {
		if m.conn.ID() == conn.ID() {
			playerName = m.name
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	if r.requester == conn.ID() {
		r.requester = ""
	}

	var remaining []domain.Connection
	var roster []string
	if len(r.members) == 0 {
		delete(h.rooms, roomID)
		metrics.RoomsGauge.Dec()
	} else {
		remaining = make([]domain.Connection, len(r.members))
		for i, m := range r.members {
			remaining[i] = m.conn
		}
		roster = r.roster()
	}
	h.mu.Unlock()

	metrics.PlayersGauge.Dec()
	log.WithFields(log.Fields{
		"room":    roomID,
		"player":  playerName,
		"conn":    conn.ID(),
		"players": len(roster),
	}).Info("Player left room")

	if len(remaining) > 0 {
		h.fanOut(remaining, domain.EventPlayerLeft, domain.PlayerLeft{
			PlayerName: playerName,
			Players:    roster,
		})
	}
}

// HasRoom reports whether roomID currently has at least one member.
func (h *Hub) HasRoom(roomID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[roomID]
	return ok
}

// ListRooms returns every live room with its member count, sorted by room ID.
func (h *Hub) ListRooms() []domain.RoomInfo {
	h.mu.RLock()
	rooms := make([]domain.RoomInfo, 0, len(h.rooms))
	for id, r := range h.rooms {
		rooms = append(rooms, domain.RoomInfo{RoomID: id, PlayerCount: len(r.members)})
	}
	h.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomID < rooms[j].RoomID })
	return rooms
}

func (h *Hub) Stats() (rooms, players int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rooms = len(h.rooms)
	for _, r := range h.rooms {
		players += len(r.members)
	}
	return rooms, players
}

// resolve looks up the caller's room. Callers must hold h.mu.
func (h *Hub) resolve(conn domain.Connection) (*room, string) {
	roomID, ok := h.conns[conn.ID()]
	if !ok {
		return nil, ""
	}
	return h.rooms[roomID], roomID
}

func (h *Hub) sendEvent(conn domain.Connection, event string, payload any) {
	data, err := domain.Encode(event, payload)
	if err != nil {
		log.WithFields(log.Fields{"event": event}).Error("Failed to encode event: ", err)
		return
	}
	if err := conn.Send(data); err != nil {
		log.WithFields(log.Fields{"conn": conn.ID(), "event": event}).
			Debug("Dropped event")
	}
}

func (h *Hub) fanOut(conns []domain.Connection, event string, payload any) {
	data, err := domain.Encode(event, payload)
	if err != nil {
		log.WithFields(log.Fields{"event": event}).Error("Failed to encode event: ", err)
		return
	}
	for _, c := range conns {
		if err := c.Send(data); err != nil {
			log.WithFields(log.Fields{"conn": c.ID(), "event": event}).
				Debug("Dropped event")
		}
	}
}
