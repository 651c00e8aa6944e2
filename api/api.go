package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Shubham-Lal/GuessPaint/domain"
	"github.com/Shubham-Lal/GuessPaint/roomcode"
)

// Registry is the read-only view of the room registry the HTTP API serves
// from. Nothing here mutates membership.
type Registry interface {
	HasRoom(roomID string) bool
	ListRooms() []domain.RoomInfo
	Stats() (rooms, players int)
}

type Server struct {
	registry Registry
}

func NewServer(registry Registry) *Server {
	return &Server{registry: registry}
}

func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/", s.IndexHandler)
	r.HandleFunc("/create-room", s.CreateRoomHandler)
	r.HandleFunc("/join-room", s.JoinRoomHandler)
	r.HandleFunc("/list-rooms", s.ListRoomsHandler)
	r.HandleFunc("/health", s.HealthHandler)
	r.HandleFunc("/stats", s.StatsHandler)
}

// CORS allows the web client, served from any origin, to reach the API.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "X-Requested-With")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	rooms, players := s.registry.Stats()
	writeJSON(w, map[string]any{
		"status":  201,
		"message": "GuessPaint API running!",
		"rooms":   rooms,
		"players": players,
	})
}

func (s *Server) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := roomcode.Generate(s.registry.HasRoom)
	writeJSON(w, map[string]string{"roomID": roomID})
}

func (s *Server) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("roomID")
	if s.registry.HasRoom(roomID) {
		writeJSON(w, map[string]any{"success": true, "roomID": roomID})
		return
	}
	writeJSON(w, map[string]any{"success": false})
}

func (s *Server) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.registry.ListRooms())
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, players := s.registry.Stats()
	writeJSON(w, map[string]int{"rooms": rooms, "players": players})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
