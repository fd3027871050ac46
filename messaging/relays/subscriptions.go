package relays

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"humandns/engine/actors"
	"humandns/engine/library"
)

const (
	quietTimeout = 2 * time.Minute
	retryDelay   = 5 * time.Second
)

// Subscriber follows the same filters on several relays and merges what
// they deliver into one stream of signature-checked, de-duplicated events.
type Subscriber struct {
	urls    []string
	filters nostr.Filters
	seen    *seenCache
}

func NewSubscriber(urls []string, filters nostr.Filters) *Subscriber {
	return &Subscriber{
		urls:    urls,
		filters: filters,
		seen:    newSeenCache(),
	}
}

// Run blocks until ctx is cancelled. On macOS a system sleep drops every
// connection and the relays are followed again from scratch.
func (s *Subscriber) Run(ctx context.Context, out chan<- nostr.Event) {
	var sleepChan = make(chan bool, 1)
	sleeper(sleepChan)
	for {
		runCtx, cancel := context.WithCancel(ctx)
		wg := &sync.WaitGroup{}
		for _, url := range s.urls {
			wg.Add(1)
			go func(url string) {
				defer wg.Done()
				s.follow(runCtx, url, out)
			}(url)
		}
		select {
		case <-ctx.Done():
			cancel()
			wg.Wait()
			return
		case <-sleepChan:
			actors.LogCLI("system sleep detected, reconnecting to relays", 2)
			cancel()
			wg.Wait()
		}
	}
}

func (s *Subscriber) follow(ctx context.Context, url string, out chan<- nostr.Event) {
	for {
		if err := s.followOnce(ctx, url, out); err != nil {
			actors.LogCLI(fmt.Sprintf("relay %s: %s", url, err), 2)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
			actors.LogCLI("Reconnecting to "+url, 3)
		}
	}
}

func (s *Subscriber) followOnce(ctx context.Context, url string, out chan<- nostr.Event) error {
	relay, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return err
	}
	defer relay.Close()
	actors.LogCLI("Connected to "+relay.URL, 4)
	sub, err := relay.Subscribe(ctx, s.filters)
	if err != nil {
		return err
	}
	defer sub.Unsub()
	eose := sub.EndOfStoredEvents
	quiet := time.NewTimer(quietTimeout)
	defer quiet.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-eose:
			eose = nil
			actors.LogCLI("Caught up with stored events on "+url, 3)
		case <-quiet.C:
			return fmt.Errorf("no events for %s, terminating connection", quietTimeout)
		case ev, ok := <-sub.Events:
			if !ok || ev == nil {
				return fmt.Errorf("subscription closed")
			}
			if !quiet.Stop() {
				<-quiet.C
			}
			quiet.Reset(quietTimeout)
			if !s.accept(*ev) {
				continue
			}
			select {
			case out <- *ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (s *Subscriber) accept(ev nostr.Event) bool {
	sane := library.ValidateSaneExecutionTime()
	defer sane()
	if ok, _ := ev.CheckSignature(); !ok {
		actors.LogCLI("dropping event with invalid signature "+ev.ID, 3)
		return false
	}
	return s.seen.firstSighting(ev)
}
