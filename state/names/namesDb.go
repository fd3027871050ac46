package names

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"humandns/engine/actors"
)

const mind = "names"

// ReadFromDisk returns the mapping last written by PersistToDisk.
func ReadFromDisk() (Mapped, bool, error) {
	f, ok := actors.Open(mind, "current")
	if !ok {
		return nil, false, nil
	}
	defer f.Close()
	m := make(Mapped)
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return m, true, nil
		}
		return nil, false, fmt.Errorf("decoding %s state: %w", mind, err)
	}
	return m, true, nil
}

// RestoreFromDisk loads the persisted mapping into an empty registry.
func (r *Registry) RestoreFromDisk() error {
	m, ok, err := ReadFromDisk()
	if err != nil || !ok {
		return err
	}
	return r.Restore(m)
}

// PersistToDisk writes the current mapping to the flat file database.
func (r *Registry) PersistToDisk() error {
	b, err := json.MarshalIndent(r.data, "", " ")
	if err != nil {
		return err
	}
	return actors.Write(mind, "current", b)
}
