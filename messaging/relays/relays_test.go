package relays

import (
	"context"
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/require"
)

func signedEvent(t *testing.T, content string) nostr.Event {
	t.Helper()
	sk := nostr.GeneratePrivateKey()
	pk, err := nostr.GetPublicKey(sk)
	require.NoError(t, err)
	e := nostr.Event{
		PubKey:    pk,
		CreatedAt: nostr.Timestamp(time.Now().Unix()),
		Kind:      1,
		Tags:      nostr.Tags{},
		Content:   content,
	}
	e.ID = e.GetID()
	require.NoError(t, e.Sign(sk))
	return e
}

func TestSubscriber_Accept(t *testing.T) {
	s := NewSubscriber(nil, nil)
	e := signedEvent(t, "hello")

	require.True(t, s.accept(e))
	require.False(t, s.accept(e), "second delivery of the same event is dropped")

	forged := signedEvent(t, "original")
	forged.Content = "tampered"
	require.False(t, s.accept(forged))
	require.True(t, s.seen.firstSighting(forged), "forged events are never cached")
}

func TestSubscriber_RunStopsOnCancel(t *testing.T) {
	s := NewSubscriber(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, make(chan nostr.Event))
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPublisher_Errors(t *testing.T) {
	e := signedEvent(t, "hello")
	require.Error(t, NewPublisher(nil).Publish(context.Background(), e))

	e.Content = "tampered"
	require.Error(t, NewPublisher([]string{"ws://127.0.0.1:1"}).Publish(context.Background(), e))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := NewPublisher([]string{"ws://127.0.0.1:1"})
	require.Error(t, p.Publish(ctx, signedEvent(t, "unreachable")))
}
