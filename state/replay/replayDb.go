package replay

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"humandns/engine/actors"
	"humandns/engine/library"
)

// Mapped holds every handled event ID and the account that signed it.
type Mapped map[library.Sha256]library.Account

// Tracker remembers which state change requests have already been handled.
type Tracker struct {
	data  Mapped
	mutex *deadlock.Mutex
}

func New() *Tracker {
	return &Tracker{
		data:  make(Mapped),
		mutex: &deadlock.Mutex{},
	}
}

// RestoreFromDisk loads the handled set written by PersistToDisk.
func (t *Tracker) RestoreFromDisk() error {
	f, ok := actors.Open("replay", "current")
	if !ok {
		return nil
	}
	defer f.Close()
	return t.restore(f)
}

func (t *Tracker) restore(f *os.File) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	data := make(Mapped)
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		if !errors.Is(err, io.EOF) {
			return err
		}
	}
	for id, account := range data {
		t.data[id] = account
	}
	return nil
}

// PersistToDisk writes the handled set to the flat file database.
func (t *Tracker) PersistToDisk() error {
	t.mutex.Lock()
	b, err := json.Marshal(t.data)
	t.mutex.Unlock()
	if err != nil {
		return err
	}
	return actors.Write("replay", "current", b)
}

func (t *Tracker) GetMap() Mapped {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	m := make(Mapped, len(t.data))
	for id, account := range t.data {
		m[id] = account
	}
	return m
}

// GetStateHash hashes the sorted set of handled event IDs. Two engines that
// handled the same requests report the same hash.
func (t *Tracker) GetStateHash() library.Sha256 {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	ids := maps.Keys(t.data)
	slices.Sort(ids)
	b := bytes.Buffer{}
	for _, id := range ids {
		decoded, err := hex.DecodeString(id)
		if err != nil {
			actors.LogCLI(err, 1)
			continue
		}
		b.Write(decoded)
	}
	return library.Sha256Sum(b.Bytes())
}
