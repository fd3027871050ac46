package relays

import (
	"context"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"humandns/engine/actors"
	"humandns/engine/library"
)

const publishTimeout = 10 * time.Second

// Publisher sends events to a fixed set of relays. Each publish opens its
// own connection.
type Publisher struct {
	urls []string
}

func NewPublisher(urls []string) *Publisher {
	return &Publisher{urls: urls}
}

// Publish sends the event to every relay. It only fails if no relay accepted it.
func (p *Publisher) Publish(ctx context.Context, event nostr.Event) error {
	if len(p.urls) == 0 {
		return fmt.Errorf("no relays configured")
	}
	if ok, _ := event.CheckSignature(); !ok {
		return fmt.Errorf("refusing to publish event %s with an invalid signature", event.ID)
	}
	var published int
	var lastErr error
	for _, url := range p.urls {
		if err := p.publishTo(ctx, url, event); err != nil {
			actors.LogCLI(fmt.Sprintf("could not publish %s to relay %s: %s", event.ID, url, err), 2)
			lastErr = err
			continue
		}
		published++
	}
	if published == 0 {
		return fmt.Errorf("event %s was not published to any relay: %w", event.ID, lastErr)
	}
	return nil
}

func (p *Publisher) publishTo(ctx context.Context, url string, event nostr.Event) error {
	sane := library.ValidateSaneExecutionTime()
	defer sane()
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	relay, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return err
	}
	defer relay.Close()
	_, err = relay.Publish(ctx, event)
	return err
}
