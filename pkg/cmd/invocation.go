package cmd

// Surface identifies how a command was invoked.
type Surface int

const (
	SurfaceSlash Surface = iota + 1
	SurfacePrefix
	SurfaceContextMenu
)

func (s Surface) String() string {
	switch s {
	case SurfaceSlash:
		return "slash"
	case SurfacePrefix:
		return "prefix"
	case SurfaceContextMenu:
		return "context-menu"
	default:
		return "unknown"
	}
}

// Invocation carries what any command runner can pass: the resolved command,
// its name path, positional arguments and an opaque payload. Adapters set Data
// to their own context (e.g. the Discord session and event).
type Invocation struct {
	Command *Command
	Path    []string
	Args    []string
	Surface Surface
	Data    interface{}
}
