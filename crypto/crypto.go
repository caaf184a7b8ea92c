package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

// randomLen is the size of the random input to the room id hash (128 bits).
const randomLen = 16

var (
	ErrZeroRandom  = errors.New("drawn random value is zero")
	ErrInvalidSize = errors.New("decoded room id has wrong size")
)

type (
	// Secret is generated once per process and shared read-only by every
	// identifier-generation call. Never persisted, never transmitted.
	Secret [32]byte

	// RoomID is a 256-bit room identifier derived from the process secret.
	RoomID [32]byte
)

// GenerateSecret fills a 256-bit secret from the system CSPRNG.
func GenerateSecret() (Secret, error) {
	var secret Secret
	if _, err := io.ReadFull(rand.Reader, secret[:]); err != nil {
		return Secret{}, err
	}
	return secret, nil
}

// GenerateRoomID derives a unique, non-guessable 256-bit room identifier.
// It draws a 128-bit non-zero random value and hashes its big-endian byte
// representation together with the secret using SHA-256, so identifiers are
// not enumerable without the secret.
func GenerateRoomID(secret Secret) (RoomID, error) {
	return roomIDFrom(rand.Reader, secret)
}

func roomIDFrom(r io.Reader, secret Secret) (RoomID, error) {
	var random [randomLen]byte
	if _, err := io.ReadFull(r, random[:]); err != nil {
		return RoomID{}, err
	}
	if random == [randomLen]byte{} {
		return RoomID{}, ErrZeroRandom
	}

	h := sha256.New()
	h.Write(random[:])
	h.Write(secret[:])

	var id RoomID
	copy(id[:], h.Sum(nil))
	return id, nil
}

// EncodeRoomID renders a room id in the URL-safe text form used in invite
// links and join paths.
func EncodeRoomID(id RoomID) string {
	return base64.URLEncoding.EncodeToString(id[:])
}

// DecodeRoomID parses the URL-safe text form back into a room id. Any input
// that does not decode to exactly 32 bytes is rejected.
func DecodeRoomID(s string) (RoomID, error) {
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return RoomID{}, err
	}
	var id RoomID
	if len(b) != len(id) {
		return RoomID{}, ErrInvalidSize
	}
	copy(id[:], b)
	return id, nil
}
