package eventconductor

import (
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"humandns/engine/actors"
	"humandns/engine/library"
	"humandns/state/names"
)

// RegisterRequest builds a signed request to claim name for the wallet's account.
func RegisterRequest(wallet library.Wallet, name names.NameKey) (nostr.Event, error) {
	return signedRequest(wallet, nostr.Tag{"op", actors.OpRegister, name.String()})
}

// RenameRequest builds a signed request to move oldName to newName.
func RenameRequest(wallet library.Wallet, oldName, newName names.NameKey) (nostr.Event, error) {
	return signedRequest(wallet, nostr.Tag{"op", actors.OpRename, oldName.String(), newName.String()})
}

func signedRequest(wallet library.Wallet, op nostr.Tag) (nostr.Event, error) {
	e := nostr.Event{
		PubKey:    wallet.Account,
		CreatedAt: nostr.Timestamp(time.Now().Unix()),
		Kind:      requestKind(),
		Tags:      nostr.Tags{op},
	}
	e.ID = e.GetID()
	if err := e.Sign(wallet.PrivateKey); err != nil {
		return nostr.Event{}, err
	}
	return e, nil
}

func requestKind() int {
	if conf := actors.MakeOrGetConfig(); conf != nil && conf.IsSet("requestKind") {
		return conf.GetInt("requestKind")
	}
	return actors.KindStateChangeRequest
}

// notificationEvent turns a committed registry notification into an event
// signed by the engine. The single letter tags are indexed by relays so
// clients can query by name or by owner.
func notificationEvent(wallet library.Wallet, request nostr.Event, n names.Notification) (nostr.Event, error) {
	e := nostr.Event{
		PubKey:    wallet.Account,
		CreatedAt: nostr.Timestamp(time.Now().Unix()),
		Tags:      nostr.Tags{nostr.Tag{"e", request.ID, "", "reply"}},
	}
	switch n := n.(type) {
	case names.Register:
		e.Kind = actors.KindRegister
		e.Tags = append(e.Tags,
			nostr.Tag{"n", n.Name.String()},
			nostr.Tag{"p", n.From.String()})
	case names.EditUsername:
		e.Kind = actors.KindEditUsername
		e.Tags = append(e.Tags,
			nostr.Tag{"o", n.OldName.String()},
			nostr.Tag{"n", n.NewName.String()},
			nostr.Tag{"p", n.From.String()})
	default:
		return nostr.Event{}, fmt.Errorf("unknown notification %T", n)
	}
	e.ID = e.GetID()
	if err := e.Sign(wallet.PrivateKey); err != nil {
		return nostr.Event{}, err
	}
	return e, nil
}

// ParseNotification decodes a notification event published by an engine.
func ParseNotification(e nostr.Event) (names.Notification, error) {
	from, err := tagOwner(e, "p")
	if err != nil {
		return nil, err
	}
	switch e.Kind {
	case actors.KindRegister:
		name, err := tagName(e, "n")
		if err != nil {
			return nil, err
		}
		return names.Register{Name: name, From: from}, nil
	case actors.KindEditUsername:
		oldName, err := tagName(e, "o")
		if err != nil {
			return nil, err
		}
		newName, err := tagName(e, "n")
		if err != nil {
			return nil, err
		}
		return names.EditUsername{OldName: oldName, NewName: newName, From: from}, nil
	}
	return nil, fmt.Errorf("event %s of kind %d is not a notification", e.ID, e.Kind)
}

func tagName(e nostr.Event, tag string) (names.NameKey, error) {
	v, ok := library.GetFirstTag(e, tag)
	if !ok {
		return names.NameKey{}, fmt.Errorf("event %s has no %q tag", e.ID, tag)
	}
	return names.ParseNameKey(v)
}

func tagOwner(e nostr.Event, tag string) (names.OwnerID, error) {
	v, ok := library.GetFirstTag(e, tag)
	if !ok {
		return names.OwnerID{}, fmt.Errorf("event %s has no %q tag", e.ID, tag)
	}
	return names.ParseOwnerID(v)
}
