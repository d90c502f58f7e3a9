package hotkey

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Code is a virtual key code as reported by libuiohook.
type Code uint16

const (
	CodeAltL      Code = 0x0038
	CodeAltR      Code = 0x0E38
	CodeCtrlL     Code = 0x001D
	CodeCtrlR     Code = 0x0E1D
	CodeShiftL    Code = 0x002A
	CodeShiftR    Code = 0x0036
	CodeMetaL     Code = 0x0E5B
	CodeMetaR     Code = 0x0E5C
	CodeSpace     Code = 0x0039
	CodeEnter     Code = 0x001C
	CodeTab       Code = 0x000F
	CodeBackquote Code = 0x0029
	CodeF1        Code = 0x003B
	CodeF11       Code = 0x0057
	CodeF12       Code = 0x0058
)

var modifiers = map[string][]Code{
	"alt":   {CodeAltL, CodeAltR},
	"ctrl":  {CodeCtrlL, CodeCtrlR},
	"shift": {CodeShiftL, CodeShiftR},
	"meta":  {CodeMetaL, CodeMetaR},
}

var keys = map[string]Code{
	"space":     CodeSpace,
	"enter":     CodeEnter,
	"tab":       CodeTab,
	"backquote": CodeBackquote,
	"f11":       CodeF11,
	"f12":       CodeF12,
}

func init() {
	// F1 through F10 are contiguous.
	for i := 0; i < 10; i++ {
		keys[fmt.Sprintf("f%d", i+1)] = CodeF1 + Code(i)
	}
}

// Binding is a modifier (either side) plus a trigger key.
type Binding struct {
	Modifiers []Code
	Key       Code
}

// DefaultBinding is ALT+SPACE.
var DefaultBinding = Binding{
	Modifiers: modifiers["alt"],
	Key:       CodeSpace,
}

// ParseBinding resolves names like "alt" and "space".
func ParseBinding(modifier, key string) (Binding, error) {
	mods, ok := modifiers[strings.ToLower(modifier)]
	if !ok {
		return Binding{}, fmt.Errorf("unknown hotkey modifier %q (want one of %s)",
			modifier, strings.Join(sortedNames(lo.Keys(modifiers)), ", "))
	}
	code, ok := keys[strings.ToLower(key)]
	if !ok {
		return Binding{}, fmt.Errorf("unknown hotkey key %q (want one of %s)",
			key, strings.Join(sortedNames(lo.Keys(keys)), ", "))
	}
	return Binding{Modifiers: mods, Key: code}, nil
}

func (b Binding) isModifier(code Code) bool {
	return lo.Contains(b.Modifiers, code)
}

func sortedNames(names []string) []string {
	slices.Sort(names)
	return names
}
