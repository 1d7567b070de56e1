package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/ranasykuri/mysteryadvanturebot/internal/config"
	"github.com/ranasykuri/mysteryadvanturebot/internal/logger"
	"github.com/ranasykuri/mysteryadvanturebot/internal/storage"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/engine"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/ending"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/state"
)

const (
	PlaceHolderText = "Type a command, or 'help'..."
	NamePlaceholder = "Your name (Enter for " + state.DefaultPlayerName + ")"
)

type phase int

const (
	phaseSelect phase = iota // Choosing a content package
	phaseName                // Entering the player name
	phasePlay
)

type entryKind int

const (
	entryNarration entryKind = iota
	entryPlayer
	entrySystem
	entryError
)

// entry is one block of the transcript.
type entry struct {
	kind entryKind
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *config.Config
	store        storage.Storage
	logger       *slog.Logger
	game         *engine.Engine
	transcript   []entry
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Package selection state
	phase           phase
	packages        []string
	packageTitles   map[string]string
	selectedPackage int
	loadingPackages bool

	showQuitModal   bool
	showEndingModal bool
}

type packagesLoadedMsg struct {
	names  []string
	titles map[string]string
	err    error
}

type gameStartedMsg struct {
	game *engine.Engine
	err  error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *config.Config, store storage.Storage, log *slog.Logger) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:          cfg,
		store:           store,
		logger:          log,
		textarea:        ta,
		chatViewport:    chatVp,
		metaViewport:    metaVp,
		phase:           phaseSelect,
		loadingPackages: true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(m.loadPackages(), textarea.Blink)
}

func (m ConsoleUI) loadPackages() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		titles, err := m.store.ListPackages(ctx)
		if err != nil {
			return packagesLoadedMsg{err: err}
		}
		names := make([]string, 0, len(titles))
		for name := range titles {
			names = append(names, name)
		}
		sort.Strings(names)
		return packagesLoadedMsg{names: names, titles: titles}
	}
}

func (m ConsoleUI) startGame(packageName, playerName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pkg, err := m.store.GetPackage(ctx, packageName)
		if err != nil {
			return gameStartedMsg{err: err}
		}
		game, err := engine.NewGame(pkg, playerName, m.logger)
		return gameStartedMsg{game: game, err: err}
	}
}

// layout sizes the panels for the current window.
func (m *ConsoleUI) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showEndingModal {
		return m.updateEndingModal(msg)
	}
	if m.phase != phasePlay {
		return m.updateSetup(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			m.submit(input)
			m.refresh()
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// submit runs one game command and records the exchange in the transcript.
func (m *ConsoleUI) submit(input string) {
	m.add(entryPlayer, input)

	res, err := m.game.Dispatch(input)
	switch {
	case errors.Is(err, engine.ErrUnknownCommand):
		m.add(entryError, fmt.Sprintf("%v. Type 'help' for the list of commands.", err))
	case err != nil:
		m.add(entryError, err.Error())
	case res.Command == engine.CmdHelp:
		m.add(entrySystem, helpText)
	case res.Command == engine.CmdQuit:
		m.showQuitModal = true
	case res.Command == engine.CmdNone:
	default:
		m.add(entryNarration, res.Message)
		if res.Command == engine.CmdGo {
			if look, err := m.game.Look(); err == nil {
				m.add(entryNarration, look.Message)
			}
		}
	}

	if end := m.game.CheckEnding(); end != ending.None {
		if n, ok := ending.Narration(end, m.game.World()); ok {
			m.add(entryNarration, fmt.Sprintf("%s\n\n%s", n.Title, n.Text))
		}
		m.showEndingModal = true
	}
}

func (m *ConsoleUI) add(kind entryKind, text string) {
	m.transcript = append(m.transcript, entry{kind: kind, text: text})
}

// begin writes the opening of a playthrough: the intro and the first location.
func (m *ConsoleUI) begin() {
	m.transcript = nil
	world := m.game.World()
	if world.Intro != "" {
		m.add(entryNarration, world.Intro)
	}
	m.add(entrySystem, fmt.Sprintf("Welcome, %s. Type 'help' to see what you can do.", m.game.Player().Name))
	if look, err := m.game.Look(); err == nil {
		m.add(entryNarration, look.Message)
	}
}

func (m *ConsoleUI) refresh() {
	m.writeChatContent()
	if m.game != nil {
		m.metaViewport.SetContent(writeMetadata(m.game))
	}
}

// writeChatContent renders the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	title := "MYSTERY ADVENTURE"
	if m.game != nil && m.game.World().Title != "" {
		title = strings.ToUpper(m.game.World().Title)
	}
	content.WriteString(titleStyle.Render(title) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, e := range m.transcript {
		content.WriteString(formatEntry(e, chatWidth) + "\n\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func formatEntry(e entry, width int) string {
	switch e.kind {
	case entryPlayer:
		return userStyle.Render("> " + wordwrap.String(e.text, width-2))
	case entrySystem:
		return promptStyle.Render(wordwrap.String(e.text, width))
	case entryError:
		return errorStyle.Render(wordwrap.String(e.text, width))
	default:
		return formatNarration(e.text, width)
	}
}

// formatNarration wraps engine output and highlights headings such as
// "LOCATION:" and speaker tags such as "[Old Librarian]".
func formatNarration(text string, width int) string {
	lines := strings.Split(wordwrap.String(text, width), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			lines[i] = speakerStyle.Render(line)
		case isHeading(trimmed):
			lines[i] = titleStyle.Render(line)
		case strings.HasPrefix(trimmed, "✓") || strings.HasPrefix(trimmed, "✗"):
			lines[i] = narratorStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func isHeading(line string) bool {
	if strings.HasPrefix(line, "[STATUS]") {
		return true
	}
	head, _, ok := strings.Cut(line, ":")
	return ok && head != "" && head == strings.ToUpper(head) && len(strings.Fields(head)) <= 2
}

func writeMetadata(game *engine.Engine) string {
	ps := game.Player()
	world := game.World()

	var content strings.Builder
	content.WriteString(titleStyle.Render("PLAYTHROUGH") + "\n\n")

	content.WriteString("Player:\n")
	content.WriteString(ps.Name + "\n\n")

	content.WriteString("Session:\n")
	content.WriteString(ps.ID.String()[:8] + "...\n\n")

	content.WriteString("Story:\n")
	content.WriteString(fmt.Sprintf("%s (%s)\n\n", world.Name, world.Version))

	if loc, ok := world.Locations[ps.Location]; ok {
		content.WriteString("Location:\n")
		content.WriteString(loc.Name + "\n\n")
	}

	content.WriteString("Progress:\n")
	content.WriteString(fmt.Sprintf("%d visited\n%d puzzles solved\n%d turns\n\n",
		ps.Visited.Len(), ps.CompletedPuzzles.Len(), ps.Turns))

	if len(ps.Inventory) > 0 {
		content.WriteString("Inventory:\n")
		for _, item := range ps.Inventory {
			content.WriteString(fmt.Sprintf("• %s\n", item.Name))
		}
	} else {
		content.WriteString("Inventory:\nEmpty\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• help: Commands\n")
	content.WriteString("• /flags: Flags\n")
	content.WriteString("• /copy: Copy log\n")

	return content.String()
}

const helpText = `Commands:
• look (l) - Describe this location
• inventory (i) - List what you carry
• take [item] - Pick up an item
• talk [name] - Talk to someone here
• puzzle - Read this location's puzzle
• answer [text] - Answer this location's puzzle
• hint - Reveal the next hint
• go [direction] - Walk through an exit
• status - Show your progress
• help (h) - Show this help
• quit (q) - Leave the game

Console:
• /flags - Show story flags
• /copy - Copy the transcript to the clipboard
• /restart - Start over`

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		m.add(entrySystem, helpText)

	case "/flags":
		var flags strings.Builder
		flags.WriteString("Flags:\n")
		ps := m.game.Player()
		if len(ps.Flags) == 0 {
			flags.WriteString("No flags are set.")
		} else {
			names := make([]string, 0, len(ps.Flags))
			for name := range ps.Flags {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				flags.WriteString(fmt.Sprintf("• %s = %v\n", name, ps.Flags[name]))
			}
		}
		m.add(entrySystem, strings.TrimRight(flags.String(), "\n"))

	case "/copy":
		if err := clipboard.WriteAll(m.plainTranscript()); err != nil {
			logger.WithError(m.logger, err).Warn("Failed to copy transcript")
			m.add(entryError, fmt.Sprintf("Could not copy the transcript: %v", err))
		} else {
			m.add(entrySystem, "Transcript copied to the clipboard.")
		}

	case "/restart":
		m.restart()

	default:
		m.add(entryError, fmt.Sprintf("Unknown console command %s. Type /help for help.", cmd))
	}

	m.textarea.Reset()
	m.refresh()
	return m, nil
}

// plainTranscript returns the transcript without styling.
func (m ConsoleUI) plainTranscript() string {
	var b strings.Builder
	for i, e := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if e.kind == entryPlayer {
			b.WriteString("> ")
		}
		b.WriteString(e.text)
	}
	return b.String()
}

func (m *ConsoleUI) restart() {
	m.game.Restart("")
	m.showEndingModal = false
	m.begin()
}

func (m ConsoleUI) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case packagesLoadedMsg:
		m.loadingPackages = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if len(msg.names) == 0 {
			m.err = errors.New("no content packages found")
			return m, nil
		}
		m.packages = msg.names
		m.packageTitles = msg.titles
		for i, name := range m.packages {
			if name == m.config.ContentPackage {
				m.selectedPackage = i
			}
		}

	case gameStartedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.game = msg.game
		m.phase = phasePlay
		logger.WithSession(m.logger, m.game.Player().ID).Info("Console playthrough started",
			"package", m.game.World().Name, "player", m.game.Player().Name)
		m.textarea.Placeholder = PlaceHolderText
		m.textarea.Reset()
		m.textarea.Focus()
		m.layout()
		m.ready = m.width > 0
		m.begin()
		m.refresh()
		return m, textarea.Blink

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			if m.loadingPackages || m.err != nil {
				return m, tea.Quit
			}
			m.showQuitModal = true
			return m, nil
		}
		if m.loadingPackages || m.loading || m.err != nil {
			return m, nil
		}

		if m.phase == phaseName {
			if msg.Type == tea.KeyEnter {
				name := strings.TrimSpace(m.textarea.Value())
				m.loading = true
				return m, m.startGame(m.packages[m.selectedPackage], name)
			}
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

		switch msg.Type {
		case tea.KeyUp:
			if m.selectedPackage > 0 {
				m.selectedPackage--
			}
		case tea.KeyDown:
			if m.selectedPackage < len(m.packages)-1 {
				m.selectedPackage++
			}
		case tea.KeyEnter:
			if len(m.packages) == 0 {
				return m, nil
			}
			if m.config.PlayerName != "" {
				m.loading = true
				return m, m.startGame(m.packages[m.selectedPackage], m.config.PlayerName)
			}
			m.phase = phaseName
			m.textarea.Reset()
			m.textarea.Placeholder = NamePlaceholder
			return m, textarea.Blink
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateEndingModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				m.restart()
				m.refresh()
				m.textarea.Focus()
				return m, textarea.Blink
			case "n", "N":
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave the mystery unsolved?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	return m.place(modalStyle.Width(50).Render(content.String()))
}

func (m ConsoleUI) renderEndingModal() string {
	end := m.game.Ended()
	n, _ := ending.Narration(end, m.game.World())

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(fmt.Sprintf("THE END: %s", n.Title)))
	content.WriteString("\n\n")
	content.WriteString(wordwrap.String(n.Text, 56))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Play again? Press Y to restart or N to quit"))

	return m.place(modalStyle.Width(60).Render(content.String()))
}

func (m ConsoleUI) renderSetupModal() string {
	var content strings.Builder

	switch {
	case m.loadingPackages:
		content.WriteString(modalTitleStyle.Render("Loading Stories..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we find the available stories..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(wordwrap.String(m.err.Error(), 56)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	case m.loading:
		content.WriteString(modalTitleStyle.Render("Starting..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Setting up your adventure..."))
	case m.phase == phaseName:
		content.WriteString(modalTitleStyle.Render("Who are you?"))
		content.WriteString("\n\n")
		content.WriteString("You cannot remember much, but perhaps you remember your name.")
		content.WriteString("\n\n")
		content.WriteString(m.textarea.View())
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Press Enter to begin"))
	default:
		content.WriteString(modalTitleStyle.Render("Choose a Story"))
		content.WriteString("\n\n")
		for i, name := range m.packages {
			label := m.packageTitles[name]
			if label == "" {
				label = name
			}
			if i == m.selectedPackage {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", label)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", label)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	return m.place(modalStyle.Width(60).Render(content.String()))
}

// place centers a modal on the screen.
func (m ConsoleUI) place(modal string) string {
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.phase != phasePlay {
		return m.renderSetupModal()
	}
	if m.showEndingModal {
		return m.renderEndingModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"", // Add empty line for spacing
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
