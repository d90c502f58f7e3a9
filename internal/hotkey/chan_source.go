package hotkey

import (
	"context"
	"sync"
)

// ChanSource replays events pushed with Send. It is used by tests and by
// callers that get key events from somewhere other than the OS hook.
type ChanSource struct {
	events chan Event
	once   sync.Once
}

func NewChanSource(buffer int) *ChanSource {
	return &ChanSource{events: make(chan Event, buffer)}
}

func (s *ChanSource) Start(context.Context) (<-chan Event, error) {
	return s.events, nil
}

func (s *ChanSource) Send(ev Event) {
	s.events <- ev
}

// Stop closes the event channel. Send must not be called afterwards.
func (s *ChanSource) Stop() {
	s.once.Do(func() { close(s.events) })
}
