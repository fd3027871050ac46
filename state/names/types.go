package names

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NameKey is the SHA-256 digest of a username. The registry never sees the username itself.
type NameKey [32]byte

// OwnerID identifies a caller. In this engine it is the x-only public key of the event signer.
type OwnerID [32]byte

// DefaultOwner is returned when resolving a name that is not registered. It is never stored.
var DefaultOwner OwnerID

type Mapped map[NameKey]OwnerID

// HashUsername derives the NameKey for a human readable username.
func HashUsername(username string) NameKey {
	return sha256.Sum256([]byte(username))
}

func (k NameKey) String() string {
	return hex.EncodeToString(k[:])
}

func (k NameKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *NameKey) UnmarshalText(b []byte) error {
	return decodeFixed(k[:], string(b))
}

// ParseNameKey decodes a 64 character hex string.
func ParseNameKey(s string) (k NameKey, err error) {
	err = decodeFixed(k[:], s)
	return
}

func (o OwnerID) String() string {
	return hex.EncodeToString(o[:])
}

func (o OwnerID) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *OwnerID) UnmarshalText(b []byte) error {
	return decodeFixed(o[:], string(b))
}

// ParseOwnerID decodes a 64 character hex pubkey.
func ParseOwnerID(s string) (o OwnerID, err error) {
	err = decodeFixed(o[:], s)
	return
}

func decodeFixed(dst []byte, s string) error {
	if len(s) != hex.EncodedLen(len(dst)) {
		return fmt.Errorf("expected %d hex characters, got %d", hex.EncodedLen(len(dst)), len(s))
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return nil
}

// Notification is emitted exactly once for every committed mutation.
type Notification interface {
	notification()
}

// Register is emitted when a name is claimed.
type Register struct {
	Name NameKey
	From OwnerID
}

// EditUsername is emitted when an owner moves a name to a new key.
type EditUsername struct {
	OldName NameKey
	NewName NameKey
	From    OwnerID
}

func (Register) notification()     {}
func (EditUsername) notification() {}
