package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"domatui/audio"
	"domatui/chat"
	"domatui/session"
)

var errEmptyClip = errors.New("no audio captured")

type replyMsg struct {
	Reply session.Reply
}

type transcriptMsg struct {
	Message chat.Message
	Err     error
}

type recorderTickMsg time.Time

type clearNoticeMsg struct{}

// waitForReply blocks on the coordinator's reply channel. Re-issued from
// Update after every replyMsg so the subscription stays alive.
func waitForReply(c *session.Coordinator) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-c.Replies()
		if !ok {
			return nil
		}
		return replyMsg{Reply: r}
	}
}

// recorderTick refreshes the recording indicator while capture is live.
func recorderTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return recorderTickMsg(t)
	})
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

// submitRecording stops the recorder and hands the clip to the coordinator
// for transcription and submission.
func submitRecording(rec *audio.Recorder, c *session.Coordinator) tea.Cmd {
	return func() tea.Msg {
		clip, err := rec.Stop()
		if err != nil {
			return transcriptMsg{Err: err}
		}
		if clip == nil || len(clip.Data) == 0 {
			return transcriptMsg{Err: errEmptyClip}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		msg, err := c.SubmitRecording(ctx, clip)
		return transcriptMsg{Message: msg, Err: err}
	}
}
