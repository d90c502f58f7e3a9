// Package hotkey watches global key events and fires a trigger when the
// configured chord is pressed.
package hotkey

import (
	"context"

	"go.uber.org/zap"
)

// Event is one global key transition.
type Event struct {
	Code Code
	Down bool
}

// Source produces global key events until ctx is cancelled or Stop is
// called. The returned channel is closed when the source ends.
type Source interface {
	Start(ctx context.Context) (<-chan Event, error)
	Stop()
}

// Trigger is called from the watcher goroutine when the chord fires.
type Trigger interface {
	Activate()
}

type TriggerFunc func()

func (f TriggerFunc) Activate() { f() }

// Watcher tracks whether the modifier is held and fires the trigger on every
// trigger-key down while it is. Key repeat retriggers.
type Watcher struct {
	binding      Binding
	trigger      Trigger
	logger       *zap.Logger
	modifierHeld bool
}

func NewWatcher(binding Binding, trigger Trigger, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		binding: binding,
		trigger: trigger,
		logger:  logger,
	}
}

// Handle applies one event and reports whether it fired the trigger.
func (w *Watcher) Handle(ev Event) bool {
	if w.binding.isModifier(ev.Code) {
		w.modifierHeld = ev.Down
		return false
	}

	if !ev.Down || ev.Code != w.binding.Key || !w.modifierHeld {
		return false
	}

	w.logger.Debug("hotkey triggered")
	w.trigger.Activate()
	return true
}

// Run consumes src until its channel closes or ctx is done.
func (w *Watcher) Run(ctx context.Context, src Source) error {
	events, err := src.Start(ctx)
	if err != nil {
		return err
	}
	defer src.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			w.Handle(ev)
		}
	}
}
