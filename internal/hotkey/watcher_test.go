package hotkey

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func down(c Code) Event { return Event{Code: c, Down: true} }
func up(c Code) Event   { return Event{Code: c, Down: false} }

func TestWatcherHandle(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		fires  int
	}{
		{"chord", []Event{down(CodeAltL), down(CodeSpace)}, 1},
		{"right alt", []Event{down(CodeAltR), down(CodeSpace)}, 1},
		{"space alone", []Event{down(CodeSpace)}, 0},
		{"released before space", []Event{down(CodeAltL), up(CodeAltL), down(CodeSpace)}, 0},
		{"space before alt", []Event{down(CodeSpace), down(CodeAltL)}, 0},
		{"space up does not fire", []Event{down(CodeAltL), up(CodeSpace)}, 0},
		{"key repeat retriggers", []Event{down(CodeAltL), down(CodeSpace), down(CodeSpace), down(CodeSpace)}, 3},
		{"other modifier", []Event{down(CodeCtrlL), down(CodeSpace)}, 0},
		{"other key", []Event{down(CodeAltL), down(CodeEnter)}, 0},
		{"either side clears", []Event{down(CodeAltL), up(CodeAltR), down(CodeSpace)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fired int
			w := NewWatcher(DefaultBinding, TriggerFunc(func() { fired++ }), zaptest.NewLogger(t))
			for _, ev := range tt.events {
				w.Handle(ev)
			}
			assert.Equal(t, tt.fires, fired)
		})
	}
}

func TestWatcherRun(t *testing.T) {
	var fired atomic.Int32
	w := NewWatcher(DefaultBinding, TriggerFunc(func() { fired.Add(1) }), nil)
	src := NewChanSource(8)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background(), src) }()

	src.Send(down(CodeAltL))
	src.Send(down(CodeSpace))
	src.Send(up(CodeSpace))
	src.Send(down(CodeSpace))
	src.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after the source closed")
	}
	assert.Equal(t, int32(2), fired.Load())
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	w := NewWatcher(DefaultBinding, TriggerFunc(func() {}), nil)
	src := NewChanSource(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, src) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestParseBinding(t *testing.T) {
	b, err := ParseBinding("ctrl", "F12")
	require.NoError(t, err)
	assert.Equal(t, []Code{CodeCtrlL, CodeCtrlR}, b.Modifiers)
	assert.Equal(t, CodeF12, b.Key)

	b, err = ParseBinding("alt", "f3")
	require.NoError(t, err)
	assert.Equal(t, Code(0x003D), b.Key)

	b, err = ParseBinding("alt", "space")
	require.NoError(t, err)
	assert.Equal(t, DefaultBinding, b)

	_, err = ParseBinding("hyper", "space")
	assert.ErrorContains(t, err, "alt, ctrl, meta, shift")

	_, err = ParseBinding("alt", "q")
	assert.ErrorContains(t, err, "unknown hotkey key")
}

func TestCustomBinding(t *testing.T) {
	b, err := ParseBinding("meta", "backquote")
	require.NoError(t, err)

	var fired int
	w := NewWatcher(b, TriggerFunc(func() { fired++ }), nil)
	w.Handle(down(CodeMetaR))
	assert.False(t, w.Handle(down(CodeSpace)))
	assert.True(t, w.Handle(down(CodeBackquote)))
	assert.Equal(t, 1, fired)
}
