package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/viper"
	"humandns/engine/actors"
	"humandns/messaging/eventconductor"
	"humandns/messaging/relays"
	"humandns/state/names"
	"humandns/state/replay"
)

func main() {
	// Various aspect of this application require global and local settings. To keep things
	// clean and tidy we put these settings in a Viper configuration.
	conf := viper.New()
	actors.InitConfig(conf)
	actors.SetConfig(conf)

	var opts []names.Option
	if conf.GetBool("renameOverwrites") {
		actors.LogCLI("renaming onto a registered name will replace its owner", 2)
		opts = append(opts, names.WithOverwriteOnRename())
	}
	registry := names.New(opts...)
	if err := registry.RestoreFromDisk(); err != nil {
		actors.LogCLI(err.Error(), 0)
		os.Exit(1)
	}
	tracker := replay.New()
	if err := tracker.RestoreFromDisk(); err != nil {
		actors.LogCLI(err.Error(), 0)
		os.Exit(1)
	}
	actors.LogCLI(fmt.Sprintf("Names Mind has started with %d names", registry.Len()), 4)

	urls := conf.GetStringSlice("relays")
	conductorOpts := []eventconductor.Option{
		eventconductor.WithPersistence(),
		eventconductor.WithRequestKind(conf.GetInt("requestKind")),
	}
	publisher := relays.NewPublisher(urls)
	if !conf.GetBool("doNotPublish") {
		conductorOpts = append(conductorOpts, eventconductor.WithPublisher(publisher))
	}
	conductor := eventconductor.New(registry, tracker, actors.MyWallet(), conductorOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventChan := make(chan nostr.Event)
	subscriber := relays.NewSubscriber(urls, nostr.Filters{{Kinds: []int{conf.GetInt("requestKind")}}})

	wg := actors.GetWaitGroup()
	wg.Add(2)
	go func() {
		defer wg.Done()
		subscriber.Run(ctx, eventChan)
	}()
	go func() {
		defer wg.Done()
		conductor.Run(ctx, eventChan)
	}()

	interrupt := make(chan struct{})
	if len(os.Args) > 1 && os.Args[1] == "-i" {
		go cliListener(interrupt, conductor, tracker)
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case <-interrupt:
	case <-sigs:
	case <-actors.GetTerminateChan():
	}
	cancel()
	actors.Shutdown()
	actors.LogCLI("Names Mind has shut down", 4)
}
