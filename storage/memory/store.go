package memory

import (
	"errors"
	"sync"

	"github.com/askyr/relay-rooms/crypto"
	"github.com/askyr/relay-rooms/model"
)

var (
	ErrRoomNotFound = errors.New("room is not found")
)

// Registry is the process-wide room map. Lookups run concurrently; inserts
// take the write lock for a single-key critical section.
type Registry struct {
	mx    sync.RWMutex
	rooms map[crypto.RoomID]*model.Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[crypto.RoomID]*model.Room),
	}
}

// Create inserts a room keyed by its id. Ids are derived from 128 bits of
// CSPRNG output, so a duplicate key is treated as practically impossible and
// is not checked for.
func (rg *Registry) Create(room *model.Room) {
	rg.mx.Lock()
	defer rg.mx.Unlock()
	rg.rooms[room.ID()] = room
}

// Lookup returns the room for an id. Absence is a normal outcome reported as
// ErrRoomNotFound, not a failure.
func (rg *Registry) Lookup(id crypto.RoomID) (*model.Room, error) {
	rg.mx.RLock()
	defer rg.mx.RUnlock()

	room, ok := rg.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (rg *Registry) Len() int {
	rg.mx.RLock()
	defer rg.mx.RUnlock()
	return len(rg.rooms)
}
