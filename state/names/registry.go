package names

import (
	"errors"
	"fmt"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrCallerIsNotOwner      = errors.New("caller is not owner")
	ErrInvalidCaller         = errors.New("caller is the default owner")
)

// Registry maps name keys to owners. It does no locking of its own: the
// caller must serialize access, one operation at a time.
type Registry struct {
	data              Mapped
	defaultOwner      OwnerID
	overwriteOnRename bool
}

type Option func(*Registry)

// WithOverwriteOnRename lets Rename take over a new name that is already
// registered, replacing its owner. Without it such a rename fails with
// ErrUsernameAlreadyExists.
func WithOverwriteOnRename() Option {
	return func(r *Registry) {
		r.overwriteOnRename = true
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		data:         make(Mapped),
		defaultOwner: DefaultOwner,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) DefaultOwner() OwnerID {
	return r.defaultOwner
}

// Resolve returns the owner of name, or the default owner if nobody holds it.
func (r *Registry) Resolve(name NameKey) OwnerID {
	if owner, ok := r.data[name]; ok {
		return owner
	}
	return r.defaultOwner
}

// Register claims name for caller.
func (r *Registry) Register(caller OwnerID, name NameKey) ([]Notification, error) {
	if caller == r.defaultOwner {
		return nil, ErrInvalidCaller
	}
	if _, exists := r.data[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrUsernameAlreadyExists, name)
	}
	r.data[name] = caller
	return []Notification{Register{Name: name, From: caller}}, nil
}

// Rename moves oldName to newName. Only the current owner of oldName may do
// this. Renaming a name onto itself succeeds and changes nothing.
func (r *Registry) Rename(caller OwnerID, oldName, newName NameKey) ([]Notification, error) {
	// unregistered names resolve to the default owner, who owns nothing
	if caller == r.defaultOwner || r.Resolve(oldName) != caller {
		return nil, fmt.Errorf("%w: %s", ErrCallerIsNotOwner, oldName)
	}
	if _, taken := r.data[newName]; taken && newName != oldName && !r.overwriteOnRename {
		return nil, fmt.Errorf("%w: %s", ErrUsernameAlreadyExists, newName)
	}
	delete(r.data, oldName)
	r.data[newName] = caller
	return []Notification{EditUsername{OldName: oldName, NewName: newName, From: caller}}, nil
}

func (r *Registry) Len() int {
	return len(r.data)
}

// Mapped returns a copy of the current mapping.
func (r *Registry) Mapped() Mapped {
	m := make(Mapped, len(r.data))
	for name, owner := range r.data {
		m[name] = owner
	}
	return m
}

// Restore loads a persisted mapping. It only works on an empty registry.
func (r *Registry) Restore(m Mapped) error {
	if len(r.data) > 0 {
		return fmt.Errorf("cannot restore into a registry holding %d names", len(r.data))
	}
	return r.Reset(m)
}

// Reset replaces the whole mapping with m, for instance a snapshot taken
// with Mapped before a change that could not be committed.
func (r *Registry) Reset(m Mapped) error {
	for name, owner := range m {
		if owner == r.defaultOwner {
			return fmt.Errorf("name %s is owned by the default owner", name)
		}
	}
	data := make(Mapped, len(m))
	for name, owner := range m {
		data[name] = owner
	}
	r.data = data
	return nil
}
