package tui

// Available commands
const (
	CmdHelp    = "help"
	CmdConnect = "connect"
	CmdLogs    = "logs"
	CmdStats   = "stats"
	CmdQuit    = "quit"
)

var availableCommands = []string{
	CmdHelp,
	CmdConnect,
	CmdLogs,
	CmdStats,
	CmdQuit,
}

// Help text
const helpText = `Zeeklook Commands:
:help    - Show this help
:connect - Switch to another monitor appliance
:logs    - Browse Zeek logs
:stats   - Show the traffic overview
:quit    - Exit the application

Navigation:
- Use ←/→ to switch log types, ↑/↓ to move between rows
- Press Space to expand a row, Enter to inspect the full entry
- Press / to edit filters, Esc to return to the table
- Press n/p to page forward and back`
