package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/nsmops/zeeklook/pkg/client"
	"github.com/nsmops/zeeklook/pkg/config"
	"github.com/nsmops/zeeklook/pkg/types"
)

var logo = `     ███████╗██╗
        ███╔╝██║
      ███╔╝  ██║
     ███████╗███████╗
     ╚══════╝╚══════╝ zeeklook`

// Page types
type pageType string

const (
	pageMain    pageType = "main"
	pageConnect pageType = "connect"
	pageLogs    pageType = "logs"
	pageStats   pageType = "stats"
)

// App is the main bubbletea model
type App struct {
	cfg     *config.Config
	cli     *types.CLI
	version string

	api           *client.Client
	activeContext config.Context

	currentPage pageType
	mainMessage string

	commandMode        bool
	commandInput       textinput.Model
	commandSuggestions []string
	selectedSuggestion int

	initialCommand string

	connectHandler tea.Model
	logsHandler    tea.Model
	statsHandler   tea.Model

	width  int
	height int
}

// NewApp creates the application model for the given appliance context. The
// log browser opens on startup unless a subcommand selects another view.
func NewApp(cfg *config.Config, active config.Context, cliInstance *types.CLI, version string) *App {
	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.Prompt = ":"
	ti.CharLimit = 100

	return &App{
		cfg:            cfg,
		cli:            cliInstance,
		version:        version,
		api:            client.NewClient(active, version),
		activeContext:  active,
		currentPage:    pageMain,
		commandInput:   ti,
		initialCommand: CmdLogs,
		mainMessage: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render(logo) +
			fmt.Sprintf("\n\nConnected to %s (%s)\nPress ':' to enter command mode", active.Name, active.URL),
	}
}

// SetInitialCommand overrides the view opened on startup.
func (a *App) SetInitialCommand(commandName string) {
	a.initialCommand = commandName
}

// Init initializes the bubbletea application
func (a *App) Init() tea.Cmd {
	if a.initialCommand != "" {
		cmd := a.executeCommand(a.initialCommand)
		a.initialCommand = ""
		return cmd
	}
	return nil
}

// Update handles all messages and state updates
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.logsHandler != nil {
			a.logsHandler, cmd = a.logsHandler.Update(msg)
			cmds = append(cmds, cmd)
		}
		if a.statsHandler != nil {
			a.statsHandler, cmd = a.statsHandler.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case ContextSelectedMsg:
		a.api = client.NewClient(msg.Context, a.version)
		a.activeContext = msg.Context
		// Open handlers belong to the previous appliance
		a.logsHandler = nil
		a.statsHandler = nil
		a.SwitchToMainPage(fmt.Sprintf("Connected to %s (%s)\nPress ':' to continue", msg.Context.Name, msg.Context.URL))
		return a, nil

	case LogTypesMsg, LogPageMsg, filterDebounceMsg:
		if a.logsHandler != nil {
			a.logsHandler, cmd = a.logsHandler.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case StatsDataMsg:
		if a.statsHandler != nil {
			a.statsHandler, cmd = a.statsHandler.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if a.commandMode {
			return a.updateCommandMode(msg)
		}

		// Global key handlers
		switch msg.String() {
		case ":":
			a.commandMode = true
			a.commandInput.Focus()
			a.updateCommandSuggestions()
			return a, nil

		case "ctrl+c":
			return a, tea.Quit

		case "q":
			if a.currentPage == pageMain {
				return a, tea.Quit
			}
			a.currentPage = pageMain
			return a, nil
		}

		// Delegate to current page handler
		switch a.currentPage {
		case pageConnect:
			if msg.String() == "esc" {
				a.SwitchToMainPage("")
				return a, nil
			}
			if a.connectHandler != nil {
				a.connectHandler, cmd = a.connectHandler.Update(msg)
				cmds = append(cmds, cmd)
			}
		case pageLogs:
			if a.logsHandler != nil {
				a.logsHandler, cmd = a.logsHandler.Update(msg)
				cmds = append(cmds, cmd)
			}
		case pageStats:
			if msg.String() == "esc" {
				a.SwitchToMainPage("")
				return a, nil
			}
			if a.statsHandler != nil {
				a.statsHandler, cmd = a.statsHandler.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) updateCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.leaveCommandMode()
		return a, nil
	case "enter":
		var name string
		if a.selectedSuggestion >= 0 && a.selectedSuggestion < len(a.commandSuggestions) {
			name = a.commandSuggestions[a.selectedSuggestion]
		} else {
			name = strings.TrimSpace(a.commandInput.Value())
		}
		a.leaveCommandMode()
		return a, a.executeCommand(name)
	case "tab":
		if len(a.commandSuggestions) > 0 {
			a.commandInput.SetValue(a.commandSuggestions[a.selectedSuggestion])
			a.commandSuggestions = nil
			a.selectedSuggestion = 0
		}
		return a, nil
	case "down", "ctrl+n":
		if len(a.commandSuggestions) > 0 {
			a.selectedSuggestion = (a.selectedSuggestion + 1) % len(a.commandSuggestions)
		}
		return a, nil
	case "up", "ctrl+p":
		if len(a.commandSuggestions) > 0 {
			a.selectedSuggestion = (a.selectedSuggestion + len(a.commandSuggestions) - 1) % len(a.commandSuggestions)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.commandInput, cmd = a.commandInput.Update(msg)
	a.updateCommandSuggestions()
	return a, cmd
}

func (a *App) leaveCommandMode() {
	a.commandMode = false
	a.commandInput.SetValue("")
	a.commandSuggestions = nil
	a.selectedSuggestion = 0
}

// View renders the current view
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var content string
	switch a.currentPage {
	case pageMain:
		content = a.mainMessage
	case pageConnect:
		if a.connectHandler != nil {
			content = a.connectHandler.View()
		}
	case pageLogs:
		if a.logsHandler != nil {
			content = a.logsHandler.View()
		}
	case pageStats:
		if a.statsHandler != nil {
			content = a.statsHandler.View()
		}
	}

	if a.commandMode {
		commandView := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Render(a.commandInput.View())

		var suggestionLines []string
		for i, suggestion := range a.commandSuggestions {
			if i == a.selectedSuggestion {
				suggestionLines = append(suggestionLines, selectedStyle.Render("▶ "+suggestion))
			} else {
				suggestionLines = append(suggestionLines, dimStyle.Render("  "+suggestion))
			}
		}

		parts := []string{content, "", commandView}
		if len(suggestionLines) > 0 {
			parts = append(parts, strings.Join(suggestionLines, "\n"))
		}
		parts = append(parts, dimStyle.Render("Tab/Enter: Select | ↑↓: Navigate | Esc: Cancel"))
		content = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	return content
}

// updateCommandSuggestions filters available commands based on current input
func (a *App) updateCommandSuggestions() {
	input := strings.TrimSpace(a.commandInput.Value())
	if input == "" {
		a.commandSuggestions = append([]string{}, availableCommands...)
		a.selectedSuggestion = 0
		return
	}

	var suggestions []string
	for _, name := range availableCommands {
		if strings.HasPrefix(name, input) {
			suggestions = append(suggestions, name)
		}
	}
	if len(suggestions) == 0 {
		for _, name := range availableCommands {
			if strings.Contains(name, input) {
				suggestions = append(suggestions, name)
			}
		}
	}

	a.commandSuggestions = suggestions
	if a.selectedSuggestion >= len(suggestions) {
		a.selectedSuggestion = 0
	}
}

// SwitchToMainPage switches to the main page with an optional message
func (a *App) SwitchToMainPage(mainMsg string) {
	a.currentPage = pageMain
	if mainMsg != "" {
		a.mainMessage = mainMsg
	}
}

// executeCommand executes a command and returns a tea.Cmd
func (a *App) executeCommand(commandName string) tea.Cmd {
	log.Info().Str("command", commandName).Msg("Executing command")

	switch commandName {
	case "":
		return nil

	case CmdHelp:
		a.SwitchToMainPage(helpText)
		return nil

	case CmdConnect:
		if len(a.cfg.Contexts) == 0 {
			a.SwitchToMainPage("No appliance contexts configured\nAdd contexts to the config file and restart")
			return nil
		}
		a.connectHandler = newConnectSelector(a.cfg.Contexts)
		a.currentPage = pageConnect
		return nil

	case CmdLogs:
		browser, cmd := newBrowser(a.api, a.pageWidth(), a.pageHeight(), a.initialLogType(), a.lookbackHours())
		a.logsHandler = browser
		a.currentPage = pageLogs
		return cmd

	case CmdStats:
		stats, cmd := newStats(a.api, a.pageWidth(), a.pageHeight(), a.lookbackHours())
		a.statsHandler = stats
		a.currentPage = pageStats
		return cmd

	case CmdQuit:
		return tea.Quit

	default:
		a.SwitchToMainPage(fmt.Sprintf("Unknown command: %s\nType :help for available commands", commandName))
		return nil
	}
}

func (a *App) initialLogType() string {
	if a.cli == nil {
		return ""
	}
	return a.cli.LogType
}

func (a *App) lookbackHours() int {
	if a.cli == nil {
		return 0
	}
	return a.cli.LookbackHours()
}

func (a *App) pageWidth() int {
	if a.width == 0 {
		return 80
	}
	return a.width
}

func (a *App) pageHeight() int {
	if a.height == 0 {
		return 24
	}
	return a.height
}

// Run starts the bubbletea program
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
