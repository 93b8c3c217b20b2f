package pager

// Navigation control ids, matched case-sensitively.
const (
	ControlFirst    = "<<"
	ControlPrevious = "<"
	ControlNext     = ">"
	ControlLast     = ">>"
)

// IsControl reports whether id is one of the navigation control ids.
func IsControl(id string) bool {
	switch id {
	case ControlFirst, ControlPrevious, ControlNext, ControlLast:
		return true
	}
	return false
}

// State is the page cursor of one paged message.
type State struct {
	page     int
	numPages int
}

// NewState starts at page 0. numPages below 1 is treated as 1.
func NewState(numPages int) *State {
	return &State{numPages: max(1, numPages)}
}

func (s *State) Page() int     { return s.page }
func (s *State) NumPages() int { return s.numPages }

// Apply moves the cursor for a control id. Moves past either end are
// clamped. It returns false, leaving the state untouched, for unknown ids.
func (s *State) Apply(controlID string) bool {
	switch controlID {
	case ControlFirst:
		s.page = 0
	case ControlPrevious:
		s.page = max(0, s.page-1)
	case ControlNext:
		s.page = min(s.numPages-1, s.page+1)
	case ControlLast:
		s.page = s.numPages - 1
	default:
		return false
	}
	return true
}
