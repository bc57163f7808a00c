package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"domatui/audio"
	"domatui/chat"
	"domatui/config"
	"domatui/content"
	"domatui/session"
	"domatui/storage"
)

type AppView struct {
	cfg         *config.Config
	coordinator *session.Coordinator
	history     *storage.HistoryStore
	recorder    *audio.Recorder
	version     string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	// One generation request may be in flight at a time from the UI's
	// point of view; the textarea is locked while waiting.
	waiting bool

	// Sidebar state
	showSidebar   bool
	sidebarList   []*chat.Conversation
	selectedIdx   int
	timeFilter    chat.TimeFilter
	filterMode    bool
	filterInput   textinput.Model
	filteredList  []*chat.Conversation
	filterApplied bool

	// Welcome screen prompt set, picked once per launch
	promptSet content.PromptSet

	// Transient status line message
	notice      string
	noticeStyle lipgloss.Style

	quitting bool
}

func NewAppView(cfg *config.Config, coordinator *session.Coordinator, history *storage.HistoryStore, recorder *audio.Recorder, version string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask anything about your operations..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	fi := textinput.New()
	fi.Placeholder = "Filter conversations..."
	fi.CharLimit = 100

	return AppView{
		cfg:         cfg,
		coordinator: coordinator,
		history:     history,
		recorder:    recorder,
		version:     version,
		textarea:    ta,
		spinner:     sp,
		filterInput: fi,
		timeFilter:  chat.FilterAll,
		promptSet:   content.RandomSet(),
		noticeStyle: DimStyle,
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.spinner.Tick,
		waitForReply(a.coordinator),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Initializing..."
	}
	if a.quitting {
		return ""
	}

	if a.showSidebar {
		return a.renderSidebar()
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(a.textarea.View())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a AppView) renderHeader() string {
	active := a.coordinator.Active()
	title := chat.DeriveTitle(active)
	header := TitleStyle.Render("DOMA AI") + " " + DimStyle.Render(a.version) +
		DimStyle.Render("  │  ") + title
	line := DimStyle.Render(strings.Repeat("─", max(0, a.width)))
	return header + "\n" + line
}

func (a AppView) renderStatusLine() string {
	state := a.recorder.State()
	switch state.Phase {
	case audio.PhaseRecording:
		return RecordingStyle.Render(fmt.Sprintf("● Recording %d:%02d", state.ElapsedSeconds/60, state.ElapsedSeconds%60)) +
			DimStyle.Render("  Enter send · Esc cancel")
	case audio.PhaseProcessing:
		return a.spinner.View() + DimStyle.Render(" Transcribing...")
	}
	if a.waiting {
		return a.spinner.View() + DimStyle.Render(" Waiting for response...")
	}
	if a.notice != "" {
		return a.noticeStyle.Render(a.notice)
	}
	return ""
}

func (a AppView) renderFooter() string {
	return FormatFooter(
		"Enter", "Send",
		"Ctrl+R", "Record",
		"Ctrl+N", "New Chat",
		"Ctrl+H", "History",
		"Ctrl+Y", "Copy Reply",
		"Ctrl+C", "Quit",
	)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
