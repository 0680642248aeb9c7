package game

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Summary is the per-room view exposed to room browsers. It deliberately
// omits the roster so one room's guesses and scores never leak to another.
type Summary struct {
	Code             string    `json:"roomCode"`
	Phase            Phase     `json:"phase"`
	PlayerCount      int       `json:"playerCount"`
	SongCount        int       `json:"songCount"`
	CurrentSongIndex int       `json:"currentSongIndex"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Registry owns every live room, keyed by its 6-digit code.
type Registry struct {
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// newRoomCode samples uniformly over [100000, 999999] and retries on
// collision with a live room. Retries are expected O(1) while the
// registry holds far fewer than 900000 rooms.
func (reg *Registry) newRoomCode() string {
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		code := fmt.Sprintf("%06d", n.Int64()+100000)
		if _, exists := reg.rooms[code]; !exists {
			return code
		}
	}
}

// CreateRoom makes a new room whose sole player is the host.
func (reg *Registry) CreateRoom(name string, songCount int) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if songCount <= 0 {
		return nil, fmt.Errorf("%w: songCount must be positive", ErrValidation)
	}

	host := newPlayer(uuid.NewString(), name)
	room := &Room{
		Code:      reg.newRoomCode(),
		SongCount: songCount,
		Phase:     PhaseLobby,
		HostID:    host.ID,
		Players:   []*Player{host},
		CreatedAt: time.Now(),
	}
	reg.rooms[room.Code] = room

	log.Info().Str("room", room.Code).Str("host", name).Int("songs", songCount).Msg("room created")
	return room, nil
}

func (reg *Registry) Get(code string) (*Room, bool) {
	room, ok := reg.rooms[code]
	return room, ok
}

func (reg *Registry) Delete(code string) {
	if _, ok := reg.rooms[code]; ok {
		delete(reg.rooms, code)
		log.Info().Str("room", code).Msg("room deleted")
	}
}

func (reg *Registry) Len() int {
	return len(reg.rooms)
}

// Summaries lists every live room, oldest first.
func (reg *Registry) Summaries() []Summary {
	out := make([]Summary, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		out = append(out, Summary{
			Code:             room.Code,
			Phase:            room.Phase,
			PlayerCount:      len(room.Players),
			SongCount:        room.SongCount,
			CurrentSongIndex: room.CurrentSongIndex,
			CreatedAt:        room.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
