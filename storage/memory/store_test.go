package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/askyr/relay-rooms/crypto"
	"github.com/askyr/relay-rooms/model"
)

func roomWithID(b byte) *model.Room {
	var id crypto.RoomID
	for i := range id {
		id[i] = b
	}
	return model.NewRoom(id, "https://example.com")
}

func TestCreateAndLookup(t *testing.T) {
	rg := NewRegistry()
	room := roomWithID(1)

	rg.Create(room)

	got, err := rg.Lookup(room.ID())
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != room {
		t.Error("Lookup() returned a different room")
	}
}

func TestLookupMissing(t *testing.T) {
	rg := NewRegistry()

	var id crypto.RoomID
	id[0] = 42
	if _, err := rg.Lookup(id); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Lookup(absent) error = %v; want ErrRoomNotFound", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	rg := NewRegistry()
	wg := &sync.WaitGroup{}

	for i := 0; i < 32; i++ {
		wg.Add(2)
		room := roomWithID(byte(i))
		go func() {
			defer wg.Done()
			rg.Create(room)
		}()
		go func() {
			defer wg.Done()
			_, _ = rg.Lookup(room.ID())
		}()
	}
	wg.Wait()

	if rg.Len() != 32 {
		t.Errorf("registry holds %d rooms; want 32", rg.Len())
	}
}
