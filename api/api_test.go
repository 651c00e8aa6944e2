package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-Lal/GuessPaint/domain"
)

type fakeRegistry struct {
	rooms map[string]int
}

func (f *fakeRegistry) HasRoom(roomID string) bool {
	_, ok := f.rooms[roomID]
	return ok
}

func (f *fakeRegistry) ListRooms() []domain.RoomInfo {
	infos := make([]domain.RoomInfo, 0, len(f.rooms))
	for _, id := range []string{"AB12", "ZZ99"} {
		if count, ok := f.rooms[id]; ok {
			infos = append(infos, domain.RoomInfo{RoomID: id, PlayerCount: count})
		}
	}
	return infos
}

func (f *fakeRegistry) Stats() (rooms, players int) {
	rooms = len(f.rooms)
	for _, count := range f.rooms {
		players += count
	}
	return rooms, players
}

func newTestRouter(registry Registry) *mux.Router {
	r := mux.NewRouter()
	r.Use(CORS)
	NewServer(registry).Register(r)
	return r
}

func get(t *testing.T, router *mux.Router, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateRoom(t *testing.T) {
	registry := &fakeRegistry{rooms: map[string]int{"AB12": 2}}
	router := newTestRouter(registry)

	rec := get(t, router, "/create-room")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	code := body["roomID"]
	assert.Len(t, code, 4)
	assert.False(t, registry.HasRoom(code), "generated code must not collide with a live room")
	for _, c := range code {
		assert.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", string(c))
	}
}

func TestJoinRoom(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantBody string
	}{
		{
			name:     "live room",
			url:      "/join-room?roomID=AB12",
			wantBody: `{"success":true,"roomID":"AB12"}`,
		},
		{
			name:     "unknown room",
			url:      "/join-room?roomID=XXXX",
			wantBody: `{"success":false}`,
		},
		{
			name:     "missing roomID",
			url:      "/join-room",
			wantBody: `{"success":false}`,
		},
	}

	registry := &fakeRegistry{rooms: map[string]int{"AB12": 2}}
	router := newTestRouter(registry)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, tt.url)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestListRooms(t *testing.T) {
	registry := &fakeRegistry{rooms: map[string]int{"AB12": 2, "ZZ99": 1}}
	router := newTestRouter(registry)

	rec := get(t, router, "/list-rooms")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"roomID":"AB12","playerCount":2},{"roomID":"ZZ99","playerCount":1}]`,
		rec.Body.String())
}

func TestListRoomsEmpty(t *testing.T) {
	router := newTestRouter(&fakeRegistry{rooms: map[string]int{}})

	rec := get(t, router, "/list-rooms")

	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestIndex(t *testing.T) {
	registry := &fakeRegistry{rooms: map[string]int{"AB12": 3}}
	router := newTestRouter(registry)

	rec := get(t, router, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"status":201,"message":"GuessPaint API running!","rooms":1,"players":3}`,
		rec.Body.String())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeRegistry{rooms: map[string]int{}})

	rec := get(t, router, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStats(t *testing.T) {
	registry := &fakeRegistry{rooms: map[string]int{"AB12": 2, "ZZ99": 1}}
	router := newTestRouter(registry)

	rec := get(t, router, "/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rooms":2,"players":3}`, rec.Body.String())
}

func TestCORSHeader(t *testing.T) {
	router := newTestRouter(&fakeRegistry{rooms: map[string]int{}})

	rec := get(t, router, "/health")

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
