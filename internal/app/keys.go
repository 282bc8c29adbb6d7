package app

import (
	"gioui.org/io/key"

	"github.com/justyntemme/photogeoview/internal/view"
)

// KeyAction is what a key press resolves to.
type KeyAction int

const (
	KeyIgnored KeyAction = iota
	KeyMove              // move the cursor to Target
	KeyOpen              // open the directory at Target
	KeyUp                // navigate to the parent directory
)

// KeyInput is everything the controller reads to resolve a key.
type KeyInput struct {
	Name      key.Name
	Mode      view.Mode
	Columns   int
	Cursor    int // -1 when there is no cursor
	Items     []view.Item
	Directory bool // directory mode
}

// ResolveKey maps a key press to an action. Moves are clamped to the item
// range; a move that lands on the current index is ignored.
func ResolveKey(in KeyInput) (KeyAction, int) {
	n := len(in.Items)

	switch in.Name {
	case key.NameDeleteBackward:
		if in.Directory {
			return KeyUp, -1
		}
		return KeyIgnored, -1
	case key.NameReturn, key.NameEnter:
		if in.Cursor >= 0 && in.Cursor < n && in.Items[in.Cursor].IsDir {
			return KeyOpen, in.Cursor
		}
		return KeyIgnored, -1
	}

	if n == 0 {
		return KeyIgnored, -1
	}

	step := 1
	if in.Mode == view.Grid && in.Columns > 1 {
		step = in.Columns
	}

	var target int
	switch in.Name {
	case key.NameDownArrow:
		target = in.Cursor + step
	case key.NameUpArrow:
		target = in.Cursor - step
	case key.NameRightArrow:
		target = in.Cursor + 1
	case key.NameLeftArrow:
		target = in.Cursor - 1
	case key.NameHome:
		target = 0
	case key.NameEnd:
		target = n - 1
	default:
		return KeyIgnored, -1
	}

	if in.Cursor < 0 {
		// No cursor yet: any movement lands on the first item.
		switch in.Name {
		case key.NameHome, key.NameEnd:
		default:
			target = 0
		}
	}

	target = clampIndex(target, n)
	if target == in.Cursor {
		return KeyIgnored, -1
	}
	return KeyMove, target
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
