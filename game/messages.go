package game

import "encoding/json"

// Client→server message types.
const (
	TypeCreateRoom  = "create_room"
	TypeJoinRoom    = "join_room"
	TypeStartGame   = "start_game"
	TypeSubmitGuess = "submit_guess"
	TypeOpenReview  = "open_review"
	TypeMarkPlayer  = "mark_player"
	TypeNextSong    = "next_song"
	TypeRestart     = "restart"
	TypeDeleteRoom  = "delete_room"
	TypeListRooms   = "list_rooms"
	TypePong        = "pong"
)

// Server→client message types.
const (
	TypeWelcome     = "welcome"
	TypeRoomState   = "room_state"
	TypeRoomsList   = "rooms_list"
	TypeRoomDeleted = "room_deleted"
	TypeError       = "error"
	TypePing        = "ping"
)

// ClientEnvelope is an inbound frame; the payload stays raw until the
// type is known.
type ClientEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Envelope is an outbound frame.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type CreateRoomPayload struct {
	Name      string `json:"name"`
	SongCount int    `json:"songCount"`
}

type JoinRoomPayload struct {
	Name     string `json:"name"`
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId,omitempty"`
}

// RoomPayload covers the host actions that only name a room.
type RoomPayload struct {
	RoomCode string `json:"roomCode"`
}

type SubmitGuessPayload struct {
	RoomCode    string `json:"roomCode"`
	PlayerID    string `json:"playerId"`
	TitleGuess  string `json:"titleGuess"`
	ArtistGuess string `json:"artistGuess"`
}

type MarkPlayerPayload struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	Field    string `json:"field"`
	Correct  bool   `json:"correct"`
}

type WelcomePayload struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type RoomsListPayload struct {
	Rooms []Summary `json:"rooms"`
}

type RoomDeletedPayload struct {
	RoomCode string `json:"roomCode"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func errorEnvelope(message string) Envelope {
	return Envelope{Type: TypeError, Payload: ErrorPayload{Message: message}}
}
