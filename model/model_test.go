package model

import (
	"testing"

	"github.com/askyr/relay-rooms/crypto"
	"github.com/davecgh/go-spew/spew"
)

type stubSink struct {
	tag string
}

func (s *stubSink) Enqueue([]byte) error { return nil }

func testRoomID(t *testing.T) crypto.RoomID {
	t.Helper()
	var id crypto.RoomID
	copy(id[:], "abcdefghijklmnopqrstuvwzyx123456")
	return id
}

func TestNewRoomInviteLink(t *testing.T) {
	room := NewRoom(testRoomID(t), "https://example.com")

	want := "https://example.com/join/YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd6eXgxMjM0NTY="
	if room.InviteLink() != want {
		t.Errorf("InviteLink() = %q; want %q", room.InviteLink(), want)
	}
}

func TestNewRoomIsOpenAndEmpty(t *testing.T) {
	room := NewRoom(testRoomID(t), "https://example.com")

	if !room.IsOpen() {
		t.Error("fresh room is not open")
	}
	if room.Len() != 0 {
		t.Errorf("fresh room has %d members; want 0", room.Len())
	}
}

func TestSetState(t *testing.T) {
	room := NewRoom(testRoomID(t), "https://example.com")

	room.SetState(RoomLocked)
	if room.IsOpen() {
		t.Error("locked room reports open")
	}
	room.SetState(RoomOpen)
	if !room.IsOpen() {
		t.Error("reopened room reports not open")
	}
}

func TestRemoveClient(t *testing.T) {
	room := NewRoom(testRoomID(t), "https://example.com")

	if room.RemoveClient(1) {
		t.Error("RemoveClient on empty room = true; want false")
	}

	room.AddClient(1, &stubSink{tag: "a"})
	room.AddClient(2, &stubSink{tag: "b"})

	if room.RemoveClient(3) {
		t.Error("RemoveClient(absent) = true; want false")
	}
	if room.Len() != 2 {
		t.Errorf("membership changed by absent removal: %d members", room.Len())
	}

	if !room.RemoveClient(1) {
		t.Error("RemoveClient(present) = false; want true")
	}
	if room.RemoveClient(1) {
		t.Error("second RemoveClient of same id = true; want false")
	}
	if room.Len() != 1 {
		t.Errorf("room has %d members after removal; want 1", room.Len())
	}
}

func TestOtherClientSinks(t *testing.T) {
	sinks := map[ClientID]*stubSink{
		1: {tag: "a"},
		2: {tag: "b"},
		3: {tag: "c"},
	}
	orders := [][]ClientID{
		{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1},
	}

	for _, order := range orders {
		room := NewRoom(testRoomID(t), "https://example.com")
		for _, id := range order {
			room.AddClient(id, sinks[id])
		}

		got := room.OtherClientSinks(1)
		if len(got) != 2 {
			t.Fatalf("insertion order %v: got %d sinks, want 2:\n%s",
				order, len(got), spew.Sdump(got))
		}
		seen := make(map[*stubSink]bool)
		for _, s := range got {
			seen[s.(*stubSink)] = true
		}
		if seen[sinks[1]] {
			t.Errorf("insertion order %v: excluded client's sink returned", order)
		}
		if !seen[sinks[2]] || !seen[sinks[3]] {
			t.Errorf("insertion order %v: missing peer sink:\n%s",
				order, spew.Sdump(got))
		}
	}
}

func TestOtherClientSinksSnapshot(t *testing.T) {
	room := NewRoom(testRoomID(t), "https://example.com")
	room.AddClient(1, &stubSink{tag: "a"})
	room.AddClient(2, &stubSink{tag: "b"})

	got := room.OtherClientSinks(1)
	room.RemoveClient(2)

	if len(got) != 1 {
		t.Errorf("snapshot affected by later removal: %d sinks", len(got))
	}
}
