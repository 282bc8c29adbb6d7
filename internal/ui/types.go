// Package ui draws the photo browser with Gio. The renderer holds only
// widget state; everything it shows comes from State, and everything the
// user does comes back as a UIEvent.
package ui

import (
	"gioui.org/io/key"

	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/pathutil"
	"github.com/justyntemme/photogeoview/internal/photo"
	"github.com/justyntemme/photogeoview/internal/view"
	"github.com/justyntemme/photogeoview/internal/virtual"
)

type UIAction int

const (
	ActionNone UIAction = iota
	ActionNavigate
	ActionBack
	ActionForward
	ActionUp
	ActionRefresh
	ActionSelect // single click
	ActionOpen   // double click
	ActionKey
	ActionSetMode
	ActionSetSort
	ActionOpenFolder
	ActionOpenLast
)

type UIEvent struct {
	Action UIAction
	Path   string
	Key    key.Name
	Mode   view.Mode
	Sort   view.SortKey
	Order  view.SortOrder
}

// Metrics are the row and tile sizes in dp. They must match the layout
// engine's configuration so reported scroll offsets line up.
type Metrics struct {
	GridItemSize    int
	GridGap         int
	ListRowHeight   int
	DetailRowHeight int
}

// ScrollTarget asks the body to scroll. A new Seq means a new request.
type ScrollTarget struct {
	Seq    uint64
	Row    int
	Offset int // dp from the top of the content
}

// State is everything the renderer draws in one frame.
type State struct {
	CurrentPath string
	Crumbs      []pathutil.Crumb
	Loading     bool
	LoadingPath string
	ErrorText   string // discovery failure with nothing to show
	CanBack     bool
	CanForward  bool
	CanUp       bool
	PhotoMode   bool

	Mode  view.Mode
	Sort  view.SortKey
	Order view.SortOrder

	Items      []view.Item
	Cursor     int
	ActivePath string
	Selected   string
	Columns    int
	Rows       int
	Window     virtual.Window
	Scroll     ScrollTarget

	Photo        *photo.Record
	PhotoLoading bool

	Roots []fs.Root
}
