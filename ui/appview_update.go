package ui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"domatui/audio"
	"domatui/chat"
	"domatui/config"
)

const noticeDuration = 4 * time.Second

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		headerHeight := 2
		footerHeight := 6
		if !a.ready {
			a.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		a.textarea.SetWidth(msg.Width - 2)
		a.updateViewportContent(true)
		return a, nil

	case tea.KeyMsg:
		if a.showSidebar {
			return a.handleSidebarKey(msg)
		}
		return a.handleChatKey(msg)

	case replyMsg:
		a.waiting = false
		if msg.Reply.Err != nil {
			if config.Debug {
				config.DebugLog.Printf("[UI] generation failed: %v", msg.Reply.Err)
			}
		}
		if msg.Reply.Dropped {
			// The conversation changed while the request was in flight.
			return a, waitForReply(a.coordinator)
		}
		a.updateViewportContent(true)
		return a, waitForReply(a.coordinator)

	case transcriptMsg:
		if msg.Err != nil {
			a.waiting = false
			a.recorder.ClearError()
			if errors.Is(msg.Err, errEmptyClip) {
				return a, a.showNotice("No audio captured.", DimStyle)
			}
			return a, a.showNotice("Failed to transcribe recording. Please try again.", RecordingStyle)
		}
		a.waiting = true
		a.updateViewportContent(true)
		return a, nil

	case recorderTickMsg:
		state := a.recorder.State()
		if state.Phase == audio.PhaseRecording || state.Phase == audio.PhaseProcessing {
			return a, recorderTick()
		}
		return a, nil

	case clearNoticeMsg:
		a.notice = ""
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a AppView) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recState := a.recorder.State()

	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		a.archiveOnExit()
		return a, tea.Quit

	case "esc":
		if recState.Phase == audio.PhaseRecording {
			a.recorder.Cancel()
			return a, a.showNotice("Recording cancelled.", DimStyle)
		}
		return a, nil

	case "enter":
		if recState.Phase == audio.PhaseRecording {
			a.waiting = true
			return a, tea.Batch(a.spinner.Tick, submitRecording(a.recorder, a.coordinator))
		}
		return a.submitInput()

	case "ctrl+r":
		return a.toggleRecording()

	case "ctrl+n":
		if _, err := a.coordinator.StartNew(); err != nil {
			if config.Debug {
				config.DebugLog.Printf("[UI] archive failed: %v", err)
			}
			return a, a.showNotice("Failed to save conversation.", RecordingStyle)
		}
		a.updateViewportContent(true)
		return a, nil

	case "ctrl+h":
		a.openSidebar()
		return a, nil

	case "ctrl+y":
		active := a.coordinator.Active()
		for i := len(active.Messages) - 1; i >= 0; i-- {
			if active.Messages[i].Sender == chat.SenderAssistant {
				clipboard.WriteAll(active.Messages[i].Content)
				return a, a.showNotice("Reply copied to clipboard.", DimStyle)
			}
		}
		return a, nil

	case "alt+1", "alt+2", "alt+3", "alt+4":
		idx := int(msg.String()[4] - '1')
		if a.coordinator.Active().Empty() && idx < len(a.promptSet.Prompts) {
			return a.submitPrompt(a.promptSet.Prompts[idx].Prompt)
		}
		return a, nil

	case "alt+j", "alt+down":
		a.viewport.HalfPageDown()
		return a, nil

	case "alt+k", "alt+up":
		a.viewport.HalfPageUp()
		return a, nil

	case "pgdown":
		a.viewport.PageDown()
		return a, nil

	case "pgup":
		a.viewport.PageUp()
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) submitInput() (tea.Model, tea.Cmd) {
	if a.waiting {
		return a, a.showNotice("Still waiting for the previous reply.", DimStyle)
	}
	text := a.textarea.Value()
	if _, err := a.coordinator.Submit(text); err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return a, nil
		}
		return a, a.showNotice("Failed to send message.", RecordingStyle)
	}
	a.textarea.Reset()
	a.waiting = true
	a.updateViewportContent(true)
	return a, a.spinner.Tick
}

func (a AppView) submitPrompt(prompt string) (tea.Model, tea.Cmd) {
	if a.waiting {
		return a, nil
	}
	if _, err := a.coordinator.QuickPrompt(prompt); err != nil {
		return a, a.showNotice("Failed to send message.", RecordingStyle)
	}
	a.waiting = true
	a.updateViewportContent(true)
	return a, a.spinner.Tick
}

func (a AppView) toggleRecording() (tea.Model, tea.Cmd) {
	state := a.recorder.State()
	switch state.Phase {
	case audio.PhaseIdle:
		a.recorder.ClearError()
		if err := a.recorder.Start(context.Background()); err != nil {
			st := a.recorder.State()
			notice := st.LastError
			if notice == "" {
				notice = "Failed to access microphone. Please check permissions."
			}
			a.recorder.ClearError()
			return a, a.showNotice(notice, RecordingStyle)
		}
		return a, recorderTick()
	case audio.PhaseRecording:
		a.waiting = true
		return a, tea.Batch(a.spinner.Tick, submitRecording(a.recorder, a.coordinator))
	}
	return a, nil
}

// showNotice sets a transient status line message on the receiver copy
// that is about to be returned from Update.
func (a *AppView) showNotice(text string, style lipgloss.Style) tea.Cmd {
	a.notice = text
	a.noticeStyle = style
	return clearNoticeAfter(noticeDuration)
}

// archiveOnExit saves the live conversation before quitting so nothing is
// lost between launches.
func (a *AppView) archiveOnExit() {
	if _, err := a.coordinator.StartNew(); err != nil && config.Debug {
		config.DebugLog.Printf("[UI] archive on exit failed: %v", err)
	}
}
