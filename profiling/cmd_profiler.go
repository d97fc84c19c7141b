// Package profiling lets callers measure the commands a client sends to the server.
package profiling

const (
	CmdTypeSelect = iota
	CmdTypeSearch
	CmdTypeFetch
	CmdTypeStore
	CmdTypeLogout
	CmdTypeTotal
)

func CmdTypeToString(cmdType int) string {
	switch cmdType {
	case CmdTypeSelect:
		return "SELECT"
	case CmdTypeSearch:
		return "SEARCH"
	case CmdTypeFetch:
		return "FETCH "
	case CmdTypeStore:
		return "STORE "
	case CmdTypeLogout:
		return "LOGOUT"

	default:
		return "Unknown"
	}
}

// CmdProfiler is the interface that can be used to perform measurements related to the execution
// of outgoing IMAP commands.
type CmdProfiler interface {
	// Start will be called right before the command is sent.
	Start(cmdType int)
	// Stop will be called once the command has completed, whether or not it succeeded.
	Stop(cmdType int)
}

// NullCmdProfiler represents a null implementation of CmdProfiler.
type NullCmdProfiler struct{}

func (*NullCmdProfiler) Start(int) {}

func (*NullCmdProfiler) Stop(int) {}
