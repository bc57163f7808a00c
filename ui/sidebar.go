package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"domatui/chat"
	"domatui/config"
)

func (a *AppView) openSidebar() {
	a.showSidebar = true
	a.selectedIdx = 0
	a.filterMode = false
	a.filterApplied = false
	a.filterInput.SetValue("")
	a.refreshSidebarList()
}

// refreshSidebarList re-reads history through the active time filter.
func (a *AppView) refreshSidebarList() {
	a.sidebarList = a.history.Filtered(a.timeFilter, time.Now())
	if a.selectedIdx >= len(a.sidebarList) {
		a.selectedIdx = 0
	}
}

func (a *AppView) visibleSidebarList() []*chat.Conversation {
	if a.filterApplied {
		return a.filteredList
	}
	return a.sidebarList
}

func (a AppView) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filterMode {
		switch msg.String() {
		case "esc":
			a.filterMode = false
			a.filterApplied = false
			a.filterInput.Blur()
			a.filterInput.SetValue("")
			return a, nil
		case "enter":
			a.filterMode = false
			a.filterInput.Blur()
			return a, nil
		}

		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)

		query := a.filterInput.Value()
		if query == "" {
			a.filterApplied = false
			return a, cmd
		}
		a.filteredList = a.searchConversations(query)
		a.filterApplied = true
		if a.selectedIdx >= len(a.filteredList) {
			a.selectedIdx = 0
		}
		return a, cmd
	}

	list := a.visibleSidebarList()

	switch msg.String() {
	case "esc", "ctrl+h":
		a.showSidebar = false
		return a, nil

	case "j", "down":
		if a.selectedIdx < len(list)-1 {
			a.selectedIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedIdx > 0 {
			a.selectedIdx--
		}
		return a, nil

	case "tab", "f":
		a.timeFilter = nextFilter(a.timeFilter)
		a.filterApplied = false
		a.filterInput.SetValue("")
		a.refreshSidebarList()
		return a, nil

	case "/":
		a.filterMode = true
		a.filterInput.Focus()
		a.filterInput.SetValue("")
		return a, textinput.Blink

	case "enter":
		if len(list) == 0 {
			return a, nil
		}
		id := list[a.selectedIdx].ID
		if _, err := a.coordinator.LoadPast(id); err != nil {
			if config.Debug {
				config.DebugLog.Printf("[UI] load conversation %s failed: %v", id, err)
			}
			return a, a.showNotice("Failed to load conversation.", RecordingStyle)
		}
		a.showSidebar = false
		a.updateViewportContent(true)
		return a, nil

	case "ctrl+c":
		a.quitting = true
		a.archiveOnExit()
		return a, tea.Quit
	}

	return a, nil
}

// searchConversations matches the query fuzzily against titles and as a
// substring against message bodies, within the current time window.
func (a *AppView) searchConversations(query string) []*chat.Conversation {
	targets := make([]string, len(a.sidebarList))
	byID := make(map[string]bool)
	for i, c := range a.sidebarList {
		targets[i] = c.Title
	}

	var out []*chat.Conversation
	for _, match := range fuzzy.Find(query, targets) {
		c := a.sidebarList[match.Index]
		out = append(out, c)
		byID[c.ID] = true
	}
	for _, hit := range a.history.Search(query) {
		if byID[hit.ConversationID] {
			continue
		}
		for _, c := range a.sidebarList {
			if c.ID == hit.ConversationID {
				out = append(out, c)
				byID[c.ID] = true
				break
			}
		}
	}
	return out
}

// nextFilter cycles through the time filter ring.
func nextFilter(f chat.TimeFilter) chat.TimeFilter {
	for i, cur := range chat.Filters {
		if cur == f {
			return chat.Filters[(i+1)%len(chat.Filters)]
		}
	}
	return chat.FilterAll
}

func (a AppView) renderSidebar() string {
	modalWidth := a.width - 4
	if modalWidth > 90 {
		modalWidth = 90
	}
	titleWidth := modalWidth - 30

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2)

	title := TitleStyle.Render("Conversation History")
	filterLabel := DimStyle.Render("Filter: ") + SelectedStyle.Render(a.timeFilter.Label())

	searchView := ""
	if a.filterMode || a.filterApplied {
		searchView = a.filterInput.View()
	}

	list := a.visibleSidebarList()
	listView := ""
	if len(list) == 0 {
		listView = DimStyle.Render("No conversations in this window.")
	} else {
		maxVisible := a.height - 14
		if maxVisible < 3 {
			maxVisible = 3
		}
		start := 0
		if a.selectedIdx >= maxVisible {
			start = a.selectedIdx - maxVisible + 1
		}
		end := start + maxVisible
		if end > len(list) {
			end = len(list)
		}

		var rows []string
		for i := start; i < end; i++ {
			c := list[i]
			entryTitle := c.Title
			if runewidth.StringWidth(entryTitle) > titleWidth {
				entryTitle = runewidth.Truncate(entryTitle, titleWidth, "...")
			}
			stamp := DimStyle.Render(c.CreatedAt.Format("Jan 2, 3:04 PM"))
			count := DimStyle.Render(fmt.Sprintf("(%d msgs)", len(c.Messages)))

			row := fmt.Sprintf("%s  %s %s", entryTitle, stamp, count)
			if i == a.selectedIdx {
				row = SelectedStyle.Render("> " + row)
			} else {
				row = "  " + row
			}
			rows = append(rows, row)
		}
		if end < len(list) {
			rows = append(rows, DimStyle.Render(fmt.Sprintf("  ↓ %d more below", len(list)-end)))
		}
		listView = strings.Join(rows, "\n")
	}

	footer := FormatFooter(
		"j/k", "Navigate",
		"Enter", "Open",
		"Tab", "Time Filter",
		"/", "Search",
		"Esc", "Close",
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		filterLabel,
		searchView,
		"",
		listView,
		"",
		footer,
	)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		modalStyle.Width(modalWidth).Render(content))
}
