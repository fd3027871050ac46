package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"humandns/engine/actors"
	"humandns/messaging/eventconductor"
	"humandns/messaging/relays"
	"humandns/state/names"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dryRun bool
	var rootDir string
	root := &cobra.Command{
		Use:          "event-tool",
		Short:        "Create and publish humandns state change requests",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			conf := viper.New()
			if rootDir != "" {
				conf.Set("rootDir", strings.TrimSuffix(rootDir, "/")+"/")
			}
			actors.InitConfig(conf)
			actors.SetConfig(conf)
		},
	}
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print the signed event instead of publishing it")
	root.PersistentFlags().StringVar(&rootDir, "root", "", "engine root directory (defaults to ~/humandns)")

	root.AddCommand(
		&cobra.Command{
			Use:   "hash <username>",
			Short: "Print the name key for a username",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), names.HashUsername(args[0]))
			},
		},
		&cobra.Command{
			Use:   "register <username>",
			Short: "Claim a username for the current wallet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := eventconductor.RegisterRequest(actors.MyWallet(), parseName(args[0]))
				if err != nil {
					return err
				}
				return send(cmd, e, dryRun)
			},
		},
		&cobra.Command{
			Use:   "rename <old username> <new username>",
			Short: "Move a username owned by the current wallet to a new one",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := eventconductor.RenameRequest(actors.MyWallet(), parseName(args[0]), parseName(args[1]))
				if err != nil {
					return err
				}
				return send(cmd, e, dryRun)
			},
		},
		&cobra.Command{
			Use:   "resolve <username>",
			Short: "Look up the owner of a username in the local engine state",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, ok, err := names.ReadFromDisk()
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no engine state found in %s", actors.MakeOrGetConfig().GetString("rootDir"))
				}
				r := names.New()
				if err := r.Restore(m); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), r.Resolve(parseName(args[0])))
				return nil
			},
		},
	)
	return root
}

// parseName accepts either a 64 character name key or a username to hash.
func parseName(s string) names.NameKey {
	if k, err := names.ParseNameKey(s); err == nil {
		return k
	}
	return names.HashUsername(s)
}

func send(cmd *cobra.Command, e nostr.Event, dryRun bool) error {
	if dryRun {
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
	defer cancel()
	publisher := relays.NewPublisher(actors.MakeOrGetConfig().GetStringSlice("relays"))
	if err := publisher.Publish(ctx, e); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), e.ID)
	return nil
}
