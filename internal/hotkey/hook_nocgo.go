//go:build !cgo

package hotkey

import (
	"context"
	"errors"
)

// ErrUnsupported is returned when the binary was built without cgo.
var ErrUnsupported = errors.New("global hotkey requires a cgo build")

type HookSource struct{}

func NewHookSource() *HookSource {
	return &HookSource{}
}

func (s *HookSource) Start(context.Context) (<-chan Event, error) {
	return nil, ErrUnsupported
}

func (s *HookSource) Stop() {}
