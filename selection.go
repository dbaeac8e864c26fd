package grasplan

// Selection identifies which grasp, if any, is highlighted in the editor.
// The zero value selects nothing.
type Selection struct {
	kind  selectionKind
	index int
}

type selectionKind int

const (
	selectionNone selectionKind = iota
	selectionAll
	selectionIndex
)

// Highlight values understood by the grasp visualizer channel.
const (
	highlightNone = -1
	highlightAll  = -10
)

// SelectNone returns the empty selection.
func SelectNone() Selection { return Selection{} }

// SelectAll returns a selection covering every grasp.
func SelectAll() Selection { return Selection{kind: selectionAll} }

// SelectIndex returns a selection of the single grasp at index i.
func SelectIndex(i int) Selection { return Selection{kind: selectionIndex, index: i} }

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool { return s.kind == selectionNone }

// IsAll reports whether every grasp is selected.
func (s Selection) IsAll() bool { return s.kind == selectionAll }

// Index returns the selected grasp index and whether exactly one grasp is
// selected.
func (s Selection) Index() (int, bool) {
	return s.index, s.kind == selectionIndex
}

// HighlightIndex returns the wire value for the visualizer highlight channel:
// the selected index, -1 for no selection, or -10 for all grasps.
func (s Selection) HighlightIndex() int {
	switch s.kind {
	case selectionAll:
		return highlightAll
	case selectionIndex:
		return s.index
	default:
		return highlightNone
	}
}
