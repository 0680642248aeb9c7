package game

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// session binds a connection to the room and player it joined as. It is a
// weak reference: it never keeps a room or player alive, and it exists
// only while the connection is open.
type session struct {
	roomCode string
	playerID string
}

type inbound struct {
	client *client
	data   []byte
}

// Hub serializes all room mutation: a single Run goroutine drains the
// channels, so one message is fully handled before the next and no room
// needs a lock. Messages from the same connection arrive in order;
// messages racing from different connections apply in receipt order.
type Hub struct {
	registry *Registry

	register   chan *client
	unregister chan *client
	inbound    chan inbound

	clients     map[*client]struct{}
	sessions    map[*client]session
	subscribers map[string]map[*client]struct{}
}

func NewHub(registry *Registry) *Hub {
	return &Hub{
		registry:    registry,
		register:    make(chan *client),
		unregister:  make(chan *client),
		inbound:     make(chan inbound, 64),
		clients:     make(map[*client]struct{}),
		sessions:    make(map[*client]session),
		subscribers: make(map[string]map[*client]struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			h.teardown(c)
		case in := <-h.inbound:
			h.receive(in.client, in.data)
		case <-ctx.Done():
			return
		}
	}
}

// receive parses one raw frame. Malformed frames are reported but not
// fatal; the reply goes through trySend, which ignores clients already
// torn down.
func (h *Hub) receive(c *client, data []byte) {
	var env ClientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		h.sendError(c, ErrMalformed)
		return
	}
	h.dispatch(c, env)
}

func (h *Hub) dispatch(c *client, env ClientEnvelope) {
	switch env.Type {
	case TypeCreateRoom:
		h.handleCreateRoom(c, env.Payload)
	case TypeJoinRoom:
		h.handleJoinRoom(c, env.Payload)
	case TypeStartGame:
		h.handleHostAction(c, env.Payload, (*Room).StartGame)
	case TypeSubmitGuess:
		h.handleSubmitGuess(c, env.Payload)
	case TypeOpenReview:
		h.handleHostAction(c, env.Payload, (*Room).OpenReview)
	case TypeMarkPlayer:
		h.handleMarkPlayer(c, env.Payload)
	case TypeNextSong:
		h.handleHostAction(c, env.Payload, (*Room).NextSong)
	case TypeRestart:
		h.handleHostAction(c, env.Payload, (*Room).Restart)
	case TypeDeleteRoom:
		h.handleDeleteRoom(c, env.Payload)
	case TypeListRooms:
		h.trySend(c, Envelope{Type: TypeRoomsList, Payload: RoomsListPayload{Rooms: h.registry.Summaries()}})
	case TypePong:
		c.pong()
	default:
		h.sendError(c, ErrUnknownType)
	}
}

func (h *Hub) handleCreateRoom(c *client, raw json.RawMessage) {
	var p CreateRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, fmt.Errorf("%w: bad create_room payload", ErrValidation))
		return
	}

	room, err := h.registry.CreateRoom(p.Name, p.SongCount)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.bind(c, room.Code, room.HostID)
	h.trySend(c, Envelope{Type: TypeWelcome, Payload: WelcomePayload{RoomCode: room.Code, PlayerID: room.HostID}})
	h.broadcast(room)
}

func (h *Hub) handleJoinRoom(c *client, raw json.RawMessage) {
	var p JoinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, fmt.Errorf("%w: bad join_room payload", ErrValidation))
		return
	}

	name := strings.TrimSpace(p.Name)
	code := strings.TrimSpace(p.RoomCode)
	if name == "" || code == "" {
		h.sendError(c, fmt.Errorf("%w: name and room code required", ErrValidation))
		return
	}

	room, ok := h.registry.Get(code)
	if !ok {
		h.sendError(c, ErrRoomNotFound)
		return
	}

	player := room.Resolve(name, p.PlayerID)
	h.bind(c, room.Code, player.ID)

	log.Info().Str("room", room.Code).Str("player", player.Name).Msg("player joined")

	// The resolved id goes back explicitly so the client can persist it
	// for future reconnects.
	h.trySend(c, Envelope{Type: TypeWelcome, Payload: WelcomePayload{RoomCode: room.Code, PlayerID: player.ID}})
	h.broadcast(room)
}

// handleHostAction covers the transitions that only name a room:
// start_game, open_review, next_song and restart.
func (h *Hub) handleHostAction(c *client, raw json.RawMessage, apply func(*Room)) {
	room, ok := h.hostRoom(c, raw)
	if !ok {
		return
	}
	apply(room)
	h.broadcast(room)
}

func (h *Hub) handleSubmitGuess(c *client, raw json.RawMessage) {
	var p SubmitGuessPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, fmt.Errorf("%w: bad submit_guess payload", ErrValidation))
		return
	}

	// Stale guesses (unknown room, wrong phase, unknown player) are
	// dropped without an error reply.
	room, ok := h.registry.Get(p.RoomCode)
	if !ok {
		return
	}
	if !room.SubmitGuess(p.PlayerID, p.TitleGuess, p.ArtistGuess) {
		return
	}
	h.broadcast(room)
}

func (h *Hub) handleMarkPlayer(c *client, raw json.RawMessage) {
	var p MarkPlayerPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, fmt.Errorf("%w: bad mark_player payload", ErrValidation))
		return
	}

	room, ok := h.registry.Get(p.RoomCode)
	if !ok {
		h.sendError(c, ErrRoomNotFound)
		return
	}
	if !h.isHost(c, room) {
		h.sendError(c, ErrNotHost)
		return
	}

	player := room.player(p.PlayerID)
	if player == nil {
		h.sendError(c, ErrPlayerNotFound)
		return
	}

	player.Mark(p.Field, p.Correct)
	h.broadcast(room)
}

func (h *Hub) handleDeleteRoom(c *client, raw json.RawMessage) {
	room, ok := h.hostRoom(c, raw)
	if !ok {
		return
	}

	// Every bound connection hears about the deletion before the room
	// goes away; the connections themselves stay open.
	for sub := range h.subscribers[room.Code] {
		h.trySend(sub, Envelope{Type: TypeRoomDeleted, Payload: RoomDeletedPayload{RoomCode: room.Code}})
	}
	h.dropRoom(room.Code)
}

// hostRoom resolves the room named in a host-only request and enforces
// that the requesting connection is bound as that room's host.
func (h *Hub) hostRoom(c *client, raw json.RawMessage) (*Room, bool) {
	var p RoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, fmt.Errorf("%w: room code required", ErrValidation))
		return nil, false
	}

	room, ok := h.registry.Get(strings.TrimSpace(p.RoomCode))
	if !ok {
		h.sendError(c, ErrRoomNotFound)
		return nil, false
	}
	if !h.isHost(c, room) {
		h.sendError(c, ErrNotHost)
		return nil, false
	}
	return room, true
}

func (h *Hub) isHost(c *client, room *Room) bool {
	sess, ok := h.sessions[c]
	return ok && sess.playerID == room.HostID
}

// bind points the connection's session at (roomCode, playerID) and moves
// its broadcast subscription accordingly.
func (h *Hub) bind(c *client, roomCode, playerID string) {
	if prev, ok := h.sessions[c]; ok && prev.roomCode != roomCode {
		h.unsubscribe(c, prev.roomCode)
	}
	h.sessions[c] = session{roomCode: roomCode, playerID: playerID}

	subs, ok := h.subscribers[roomCode]
	if !ok {
		subs = make(map[*client]struct{})
		h.subscribers[roomCode] = subs
	}
	subs[c] = struct{}{}
}

func (h *Hub) unsubscribe(c *client, roomCode string) {
	if subs, ok := h.subscribers[roomCode]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.subscribers, roomCode)
		}
	}
}

// broadcast pushes a full snapshot of the room to its subscribers. No
// diffing: always sending complete state is what keeps every client
// correct, at a cost bounded by the room's own membership.
func (h *Hub) broadcast(room *Room) {
	snapshot := room.Snapshot()
	for c := range h.subscribers[room.Code] {
		h.trySend(c, Envelope{Type: TypeRoomState, Payload: snapshot})
	}
}

// trySend queues an envelope without blocking the hub; a client whose
// buffer is full is treated as gone.
func (h *Hub) trySend(c *client, env Envelope) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- env:
	default:
		h.teardown(c)
	}
}

func (h *Hub) sendError(c *client, err error) {
	h.trySend(c, errorEnvelope(err.Error()))
}

// dropRoom removes a room and every binding that references it.
func (h *Hub) dropRoom(code string) {
	h.registry.Delete(code)
	for sub := range h.subscribers[code] {
		delete(h.sessions, sub)
	}
	delete(h.subscribers, code)
}

// teardown runs exactly once per connection, on every close path: the
// liveness ticker dies with the write pump, the session binding is
// cleared, and a host's room is deleted outright. A non-host player's
// roster entry stays behind indefinitely so a saved id can resume later.
func (h *Hub) teardown(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)

	sess, ok := h.sessions[c]
	if !ok {
		return
	}
	delete(h.sessions, c)
	h.unsubscribe(c, sess.roomCode)

	room, ok := h.registry.Get(sess.roomCode)
	if !ok {
		return
	}
	if room.HostID == sess.playerID {
		// The room vanishes with its host; nobody is notified.
		log.Info().Str("room", room.Code).Msg("host disconnected")
		h.dropRoom(room.Code)
	}
}
