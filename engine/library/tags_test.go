package library

import (
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/require"
)

func TestGetOp(t *testing.T) {
	e := nostr.Event{Tags: nostr.Tags{
		nostr.Tag{"e", "abc", "", "reply"},
		nostr.Tag{"op", "humandns.names.rename", "aa", "bb"},
	}}
	op, args, ok := GetOp(e)
	require.True(t, ok)
	require.Equal(t, "humandns.names.rename", op)
	require.Equal(t, []string{"aa", "bb"}, args)

	reply, ok := GetFirstReply(e)
	require.True(t, ok)
	require.Equal(t, "abc", reply)

	_, _, ok = GetOp(nostr.Event{})
	require.False(t, ok)
}

func TestSha256Sum(t *testing.T) {
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Sha256Sum(""))
	require.Equal(t, Sha256Sum("abc"), Sha256Sum([]byte("abc")))
}
