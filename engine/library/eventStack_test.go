package library

import (
	"fmt"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/require"
)

func TestStack_FIFO(t *testing.T) {
	s := NewEventStack(2)
	_, ok := s.Pop()
	require.False(t, ok)

	for i := 0; i < 7; i++ {
		s.Push(&nostr.Event{ID: fmt.Sprint(i)})
	}
	require.Equal(t, 7, s.Len())

	for i := 0; i < 3; i++ {
		e, ok := s.Pop()
		require.True(t, ok)
		require.Equal(t, fmt.Sprint(i), e.ID)
	}
	// wrap around then grow again
	for i := 7; i < 12; i++ {
		s.Push(&nostr.Event{ID: fmt.Sprint(i)})
	}
	for i := 3; i < 12; i++ {
		e, ok := s.Pop()
		require.True(t, ok)
		require.Equal(t, fmt.Sprint(i), e.ID)
	}
	require.Zero(t, s.Len())
}
