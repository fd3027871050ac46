package library

import (
	"github.com/nbd-wtf/go-nostr"
)

func GetFirstTag(e nostr.Event, startsWith string) (string, bool) {
	for _, tag := range e.Tags {
		if tag.StartsWith([]string{startsWith}) {
			return tag.Value(), true
		}
	}
	return "", false
}

// GetOp returns the operation name and arguments of the first op tag:
// ["op", <operation>, <arg>...]
func GetOp(e nostr.Event) (op string, args []string, ok bool) {
	for _, tag := range e.Tags {
		if tag.StartsWith([]string{"op"}) && len(tag) > 1 {
			return tag[1], tag[2:], true
		}
	}
	return "", nil, false
}

// GetFirstReply returns the event ID this event replies to.
func GetFirstReply(e nostr.Event) (string, bool) {
	for _, tag := range e.Tags {
		if len(tag) > 3 && tag[0] == "e" && tag[3] == "reply" {
			return tag[1], true
		}
	}
	return "", false
}
