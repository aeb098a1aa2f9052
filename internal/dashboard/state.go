// Package dashboard holds the presentation state of the terminal dashboard and
// the router that maps key presses onto it. Nothing here draws or performs
// I/O; the router returns an Effect for the front-end to carry out.
package dashboard

import (
	"github.com/gabapcia/transferscope/internal/transfer"
)

// Screen is the dashboard page currently shown.
type Screen int

const (
	ScreenStartup Screen = iota
	ScreenQueryBuilder
	ScreenLoading
	ScreenMain
	ScreenExiting
)

func (s Screen) String() string {
	switch s {
	case ScreenStartup:
		return "startup"
	case ScreenQueryBuilder:
		return "query-builder"
	case ScreenLoading:
		return "loading"
	case ScreenMain:
		return "main"
	case ScreenExiting:
		return "exiting"
	}
	return "unknown"
}

// Query builder fields, in navigation order.
const (
	FieldAddress = iota
	FieldNative
	FieldERC20
	FieldERC721
	FieldChain
	FieldStartBlock

	fieldCount
)

// TableState is the browsing position of one result tab.
//
// A selection never exists on an empty table. When it exists it is within
// [0, Length) and ScrollPosition equals it.
type TableState struct {
	selected       int
	hasSelection   bool
	ScrollPosition int
	ScrollRange    int
	Length         int
}

// Selected returns the selected row and whether there is one.
func (t TableState) Selected() (int, bool) {
	return t.selected, t.hasSelection
}

// Next selects the following row, starting at 0 and wrapping after the last.
func (t *TableState) Next() {
	if t.Length == 0 {
		return
	}

	switch {
	case !t.hasSelection, t.selected >= t.Length-1:
		t.selected = 0
	default:
		t.selected++
	}
	t.hasSelection = true
	t.ScrollPosition = t.selected
}

// Previous selects the preceding row, starting at 0 and wrapping before the first.
func (t *TableState) Previous() {
	if t.Length == 0 {
		return
	}

	switch {
	case !t.hasSelection:
		t.selected = 0
	case t.selected == 0:
		t.selected = t.Length - 1
	default:
		t.selected--
	}
	t.hasSelection = true
	t.ScrollPosition = t.selected
}

// load resets the table for a freshly loaded sequence of length n.
func (t *TableState) load(n int) {
	*t = TableState{
		Length:      n,
		ScrollRange: max(n-1, 0),
	}
}

// State is everything the dashboard needs to render one frame.
type State struct {
	Screen    Screen
	ActiveTab transfer.Kind
	Tables    [transfer.KindCount]TableState

	// Editing and EditField track the query builder cursor.
	Editing   bool
	EditField int

	// SavePrompt is set while the main screen asks to confirm saving.
	SavePrompt bool

	// Err is the last error shown to the operator, cleared on the next transition.
	Err error

	// Notice is a one-line informational message (e.g. the saved file path).
	Notice string

	previous Screen
}

// NewState returns the state shown when the dashboard opens.
func NewState() *State {
	return &State{Screen: ScreenStartup}
}

// ActiveTable returns the table of the active tab.
func (s *State) ActiveTable() *TableState {
	return &s.Tables[s.ActiveTab]
}

// BeginLoad switches to the loading screen and clears every table.
func (s *State) BeginLoad() {
	s.Screen = ScreenLoading
	s.Err = nil
	s.Notice = ""
	s.SavePrompt = false
	for i := range s.Tables {
		s.Tables[i].load(0)
	}
}

// CompleteLoad adopts the lengths of a finished load, recomputes every scroll
// range and shows the main screen on the first tab.
func (s *State) CompleteLoad(lengths [transfer.KindCount]int) {
	for i, n := range lengths {
		s.Tables[i].load(n)
	}
	s.ActiveTab = transfer.KindNative
	s.Screen = ScreenMain
	s.Err = nil
}

// FailLoad returns to the query builder with err shown and empty tables.
func (s *State) FailLoad(err error) {
	for i := range s.Tables {
		s.Tables[i].load(0)
	}
	s.Screen = ScreenQueryBuilder
	s.Editing = false
	s.Err = err
}

func (s *State) goTo(screen Screen) {
	if screen == ScreenExiting && s.Screen != ScreenExiting {
		s.previous = s.Screen
	}
	s.Screen = screen
}
