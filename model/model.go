package model

import (
	"sync"

	"github.com/askyr/relay-rooms/crypto"
)

// ClientID identifies one live connection. Ids are unique across the whole
// process, not just within a room.
type ClientID uint64

// Sink is the outbound end of a member's connection. Enqueue returns an error
// once the member's queue is closed.
type Sink interface {
	Enqueue(msg []byte) error
}

type RoomState int

const (
	RoomOpen RoomState = iota
	// RoomLocked is reserved for future admission control; no transition to
	// it is exercised yet.
	RoomLocked
)

// Room is a relay group. Membership is guarded by a per-room lock so that
// churn in one room never blocks access to another.
type Room struct {
	id         crypto.RoomID
	inviteLink string

	mx      sync.RWMutex
	state   RoomState
	clients map[ClientID]Sink
}

func NewRoom(id crypto.RoomID, baseURL string) *Room {
	return &Room{
		id:         id,
		inviteLink: baseURL + "/join/" + crypto.EncodeRoomID(id),
		state:      RoomOpen,
		clients:    make(map[ClientID]Sink, 4),
	}
}

func (r *Room) ID() crypto.RoomID {
	return r.id
}

func (r *Room) InviteLink() string {
	return r.inviteLink
}

// SetState is the extension point for future admission control; nothing in
// the relay transitions a room out of RoomOpen today.
func (r *Room) SetState(state RoomState) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.state = state
}

func (r *Room) IsOpen() bool {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.state == RoomOpen
}

func (r *Room) AddClient(id ClientID, sink Sink) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.clients[id] = sink
}

// RemoveClient reports whether the client was a member. Removing an absent
// client is a no-op.
func (r *Room) RemoveClient(id ClientID) bool {
	r.mx.Lock()
	defer r.mx.Unlock()
	_, ok := r.clients[id]
	delete(r.clients, id)
	return ok
}

// OtherClientSinks returns a snapshot of every member's sink except the
// excluded one. Membership changes after the call do not affect the returned
// slice. No ordering is guaranteed.
func (r *Room) OtherClientSinks(exclude ClientID) []Sink {
	r.mx.RLock()
	defer r.mx.RUnlock()
	sinks := make([]Sink, 0, len(r.clients))
	for id, sink := range r.clients {
		if id != exclude {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

func (r *Room) Len() int {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return len(r.clients)
}
