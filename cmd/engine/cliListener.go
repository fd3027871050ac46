package main

import (
	"fmt"

	"github.com/eiannone/keyboard"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"humandns/engine/actors"
	"humandns/messaging/eventconductor"
	"humandns/state/names"
	"humandns/state/replay"
)

// cliListener listens for keypresses and prints parts of the current state.
func cliListener(interrupt chan struct{}, conductor *eventconductor.Conductor, tracker *replay.Tracker) {
	fmt.Println("VIEW CURRENT STATE:\nn: name table\nw: current wallet\nc: engine config\nr: replay state hash\nq: to quit")
	for {
		r, k, err := keyboard.GetSingleKey()
		if err != nil {
			actors.LogCLI(err.Error(), 1)
			return
		}
		switch str := string(r); str {
		default:
			if k == keyboard.KeyEnter {
				fmt.Println("\n-----------------------------------")
				break
			}
			if r == 0 {
				break
			}
			fmt.Println("Key " + str + " is not bound to anything. See cliListener.go for more details.")
		case "q":
			close(interrupt)
			return
		case "n":
			printNames(conductor.GetMap())
		case "w":
			fmt.Printf("Current Wallet: \n%s\n", actors.MyWallet().Account)
		case "r":
			m := tracker.GetMap()
			fmt.Printf("Handled requests: %d\nState hash: %s\n", len(m), tracker.GetStateHash())
		case "c":
			fmt.Println("CURRENT CONFIG")
			for k, v := range actors.MakeOrGetConfig().AllSettings() {
				fmt.Printf("\nKey: %s; Value: %v\n", k, v)
			}
		}
	}
}

func printNames(m names.Mapped) {
	keys := maps.Keys(m)
	slices.SortFunc(keys, func(a, b names.NameKey) bool {
		return a.String() < b.String()
	})
	fmt.Printf("\n--------- %d names -----------\n", len(keys))
	for _, name := range keys {
		fmt.Printf("NAME: %s OWNER: %s\n", name, m[name])
	}
}
