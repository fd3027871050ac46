package eventconductor

import (
	"context"
	"errors"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
	"humandns/engine/actors"
	"humandns/engine/library"
	"humandns/state/names"
	"humandns/state/replay"
)

type Publisher interface {
	Publish(ctx context.Context, event nostr.Event) error
}

// Conductor feeds state change requests into the registry one at a time.
// It checks signatures, supplies the signer as the caller, rejects replays,
// commits the new state to disk and turns registry notifications into
// signed events.
type Conductor struct {
	registry    *names.Registry
	replay      *replay.Tracker
	wallet      library.Wallet
	publisher   Publisher
	persist     bool
	requestKind int
	mu          *deadlock.Mutex
}

type Option func(*Conductor)

// WithPublisher publishes notification events after every committed request.
func WithPublisher(p Publisher) Option {
	return func(c *Conductor) {
		c.publisher = p
	}
}

// WithPersistence writes the registry and replay state to the flat file database after every request.
func WithPersistence() Option {
	return func(c *Conductor) {
		c.persist = true
	}
}

func WithRequestKind(kind int) Option {
	return func(c *Conductor) {
		c.requestKind = kind
	}
}

func New(registry *names.Registry, tracker *replay.Tracker, wallet library.Wallet, opts ...Option) *Conductor {
	c := &Conductor{
		registry:    registry,
		replay:      tracker,
		wallet:      wallet,
		requestKind: actors.KindStateChangeRequest,
		mu:          &deadlock.Mutex{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve looks up the owner of a name between requests.
func (c *Conductor) Resolve(name names.NameKey) names.OwnerID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Resolve(name)
}

// GetMap returns a copy of the name table.
func (c *Conductor) GetMap() names.Mapped {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Mapped()
}

// Run handles events from in, in the order they arrive, until ctx is done.
func (c *Conductor) Run(ctx context.Context, in <-chan nostr.Event) {
	stack := library.NewEventStack(16)
	for {
		if stack.Len() == 0 {
			select {
			case e, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				stack.Push(&e)
			case <-ctx.Done():
				return
			}
			continue
		}
		select {
		case e, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			stack.Push(&e)
		case <-ctx.Done():
			return
		default:
			if e, ok := stack.Pop(); ok {
				c.process(ctx, *e)
			}
		}
	}
}

func (c *Conductor) process(ctx context.Context, e nostr.Event) {
	notifications, err := c.HandleEvent(e)
	if err != nil {
		actors.LogCLI(fmt.Sprintf("event %s did not cause a state change: %s", e.ID, err), 2)
		return
	}
	actors.LogCLI(fmt.Sprintf("Handled state change event %s from %s", e.ID, e.PubKey), 4)
	if c.publisher == nil {
		return
	}
	for _, n := range notifications {
		if err := c.publisher.Publish(ctx, n); err != nil {
			actors.LogCLI(err.Error(), 1)
		}
	}
}

// HandleEvent applies a single state change request. On success it returns
// the signed notification events for the committed mutation. Any error,
// including a failure to write the new state to disk, leaves the registry
// untouched.
func (c *Conductor) HandleEvent(e nostr.Event) ([]nostr.Event, error) {
	if e.Kind != c.requestKind {
		return nil, fmt.Errorf("kind %d is not a state change request", e.Kind)
	}
	if ok, _ := e.CheckSignature(); !ok {
		return nil, fmt.Errorf("invalid signature")
	}
	caller, err := names.ParseOwnerID(e.PubKey)
	if err != nil {
		return nil, fmt.Errorf("invalid pubkey: %w", err)
	}
	op, args, ok := library.GetOp(e)
	if !ok {
		return nil, fmt.Errorf("no valid operation found")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replay.Seen(e) {
		return nil, fmt.Errorf("event %s is already in our local state", e.ID)
	}
	var snapshot names.Mapped
	if c.persist {
		snapshot = c.registry.Mapped()
	}
	notifications, opErr := c.route(caller, op, args)
	if opErr != nil && !isRegistryError(opErr) {
		// malformed requests are not recorded, nothing about them can ever succeed
		return nil, opErr
	}
	// a signed request is only ever evaluated once, whatever the outcome
	if err := c.replay.Mark(e); err != nil {
		return nil, err
	}
	if err := c.commit(opErr == nil); err != nil {
		c.replay.Forget(e)
		if rbErr := c.registry.Reset(snapshot); rbErr != nil {
			actors.LogCLI(rbErr.Error(), 1)
		}
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}

	var out []nostr.Event
	for _, n := range notifications {
		ne, err := notificationEvent(c.wallet, e, n)
		if err != nil {
			return nil, err
		}
		out = append(out, ne)
	}
	return out, nil
}

func (c *Conductor) route(caller names.OwnerID, op string, args []string) ([]names.Notification, error) {
	switch op {
	case actors.OpRegister:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument, got %d", op, len(args))
		}
		name, err := names.ParseNameKey(args[0])
		if err != nil {
			return nil, err
		}
		return c.registry.Register(caller, name)
	case actors.OpRename:
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes 2 arguments, got %d", op, len(args))
		}
		oldName, err := names.ParseNameKey(args[0])
		if err != nil {
			return nil, err
		}
		newName, err := names.ParseNameKey(args[1])
		if err != nil {
			return nil, err
		}
		return c.registry.Rename(caller, oldName, newName)
	}
	return nil, fmt.Errorf("unknown operation %q", op)
}

func (c *Conductor) commit(mutated bool) error {
	if !c.persist {
		return nil
	}
	if err := c.replay.PersistToDisk(); err != nil {
		return fmt.Errorf("could not persist replay state: %w", err)
	}
	if mutated {
		if err := c.registry.PersistToDisk(); err != nil {
			return fmt.Errorf("could not persist names: %w", err)
		}
	}
	return nil
}

func isRegistryError(err error) bool {
	return errors.Is(err, names.ErrUsernameAlreadyExists) ||
		errors.Is(err, names.ErrCallerIsNotOwner) ||
		errors.Is(err, names.ErrInvalidCaller)
}
