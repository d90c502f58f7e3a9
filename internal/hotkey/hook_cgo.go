//go:build cgo

package hotkey

import (
	"context"
	"sync"

	hook "github.com/robotn/gohook"
)

// HookSource reads global key events through libuiohook. Only one may run
// per process.
type HookSource struct {
	stopOnce sync.Once
}

func NewHookSource() *HookSource {
	return &HookSource{}
}

func (s *HookSource) Start(ctx context.Context) (<-chan Event, error) {
	raw := hook.Start()
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				s.Stop()
				return
			case ev, ok := <-raw:
				if !ok {
					return
				}
				var down bool
				switch ev.Kind {
				case hook.KeyHold:
					down = true
				case hook.KeyUp:
					down = false
				default:
					continue
				}
				select {
				case out <- Event{Code: Code(ev.Keycode), Down: down}:
				case <-ctx.Done():
					s.Stop()
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *HookSource) Stop() {
	s.stopOnce.Do(hook.End)
}
