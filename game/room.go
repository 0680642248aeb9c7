package game

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Room is a single game session. It is owned by the Registry and only
// ever mutated from the hub goroutine, so it carries no locking.
type Room struct {
	Code             string    `json:"roomCode"`
	SongCount        int       `json:"songCount"`
	Phase            Phase     `json:"phase"`
	CurrentSongIndex int       `json:"currentSongIndex"`
	HostID           string    `json:"hostId"`
	Players          []*Player `json:"players"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (r *Room) player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Resolve maps a join request onto a player identity. Precedence: exact
// id match (reconnect), then exact name match (client lost its token,
// e.g. by reloading), then a freshly minted player appended to the
// roster. The name fallback knowingly merges two humans who picked the
// same display name; that approximation is accepted rather than guessed
// around.
func (r *Room) Resolve(name, playerID string) *Player {
	if playerID != "" {
		if p := r.player(playerID); p != nil {
			p.resetReconnect()
			return p
		}
	}

	for _, p := range r.Players {
		if p.Name == name {
			p.resetReconnect()
			return p
		}
	}

	p := newPlayer(uuid.NewString(), name)
	r.Players = append(r.Players, p)
	return p
}

// StartGame begins a fresh run from song zero, wiping every player's
// score along with their round state.
func (r *Room) StartGame() {
	r.Phase = PhasePlaying
	r.CurrentSongIndex = 0
	for _, p := range r.Players {
		p.resetGame()
	}
}

// SubmitGuess records a player's guesses for the current song and
// reports whether anything changed. Late or stale submissions (wrong
// phase, unknown player) are dropped without an error so slow clients
// don't get spammed.
func (r *Room) SubmitGuess(playerID, title, artist string) bool {
	if r.Phase != PhasePlaying {
		return false
	}
	p := r.player(playerID)
	if p == nil {
		return false
	}
	p.TitleGuess = strings.TrimSpace(title)
	p.ArtistGuess = strings.TrimSpace(artist)
	p.Submitted = true
	return true
}

func (r *Room) OpenReview() {
	r.Phase = PhaseReview
}

// NextSong advances to the next round, or to the results screen when the
// current song was the last one. Scores persist across rounds.
func (r *Room) NextSong() {
	if r.CurrentSongIndex < r.SongCount-1 {
		r.CurrentSongIndex++
		r.Phase = PhasePlaying
		for _, p := range r.Players {
			p.resetRound()
		}
		return
	}
	r.Phase = PhaseResults
}

// Restart returns the room to the lobby with scores intact, unlike
// StartGame which zeroes them.
func (r *Room) Restart() {
	r.Phase = PhaseLobby
	r.CurrentSongIndex = 0
	for _, p := range r.Players {
		p.resetRound()
	}
}

// Snapshot returns a deep copy safe to hand to the write pumps, which
// serialize it concurrently with later mutations of the live room.
func (r *Room) Snapshot() Room {
	out := *r
	out.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		cp := *p
		out.Players[i] = &cp
	}
	return out
}
