package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/require"
	"humandns/engine/actors"
	"humandns/engine/library"
	"humandns/state/names"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return strings.TrimSpace(out.String())
}

func TestHash(t *testing.T) {
	root := t.TempDir()
	require.Equal(t, names.HashUsername("alice").String(), run(t, "--root", root, "hash", "alice"))
}

func TestRegister_DryRun(t *testing.T) {
	root := t.TempDir()
	out := run(t, "--root", root, "--dry-run", "register", "alice")

	var e nostr.Event
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	ok, err := e.CheckSignature()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, actors.KindStateChangeRequest, e.Kind)
	require.Equal(t, actors.MyWallet().Account, e.PubKey)

	op, args, ok := library.GetOp(e)
	require.True(t, ok)
	require.Equal(t, actors.OpRegister, op)
	require.Equal(t, []string{names.HashUsername("alice").String()}, args)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	// first run writes the default config into root
	run(t, "--root", root, "hash", "alice")

	owner, err := names.ParseOwnerID(strings.Repeat("ab", 32))
	require.NoError(t, err)
	r := names.New()
	_, err = r.Register(owner, names.HashUsername("alice"))
	require.NoError(t, err)
	require.NoError(t, r.PersistToDisk())

	require.Equal(t, owner.String(), run(t, "--root", root, "resolve", "alice"))
	require.Equal(t, names.DefaultOwner.String(), run(t, "--root", root, "resolve", "bob"))
}
