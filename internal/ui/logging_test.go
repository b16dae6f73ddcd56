package ui

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgram is a fake implementation of teaProgramProvider. It collects all
// messages sent via its Send method.
type fakeProgram struct {
	msgs chan tea.Msg
}

func newFakeProgram() *fakeProgram {
	return &fakeProgram{
		msgs: make(chan tea.Msg, 100),
	}
}

func (fp *fakeProgram) Send(msg tea.Msg) {
	fp.msgs <- msg
}

// receive awaits the next forwarded log message, failing the test when none
// arrives in time.
func (fp *fakeProgram) receive(t *testing.T) LogMsg {
	t.Helper()

	select {
	case got := <-fp.msgs:
		lm, ok := got.(LogMsg)
		require.True(t, ok, "expected a LogMsg, got %T", got)

		return lm
	case <-time.After(300 * time.Millisecond):
		t.Fatal("timeout waiting for log message")

		return ""
	}
}

// TestTeaLogWriter_Write_Table verifies that calls to Write send the expected
// messages.
func TestTeaLogWriter_Write_Table(t *testing.T) {
	t.Parallel()

	fp := newFakeProgram()
	writer := NewTeaLogWriter(fp)
	defer writer.Stop()

	testCases := []struct {
		name  string
		input string
	}{
		{"Success_EmptyMessage", ""},
		{"Success_ShortMessage", "log"},
		{"Success_LongMessage", "Processed: /mnt/media/video.mkv -> /mnt/backup/video.mkv"},
		{"Success_UnicodeMessage", "Processed: /mnt/media/日本.txt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := writer.Write([]byte(tc.input))
			require.NoError(t, err)
			require.Equal(t, len(tc.input), n)

			assert.Equal(t, LogMsg(tc.input), fp.receive(t))
		})
	}
}

// TestTeaLogWriter_SlogSink_Success verifies the writer works as the sink of
// a structured logging handler, the way the transfer commands install it.
func TestTeaLogWriter_SlogSink_Success(t *testing.T) {
	t.Parallel()

	fp := newFakeProgram()
	writer := NewTeaLogWriter(fp)
	defer writer.Stop()

	logger := slog.New(tint.NewHandler(writer, &tint.Options{
		Level:   slog.LevelInfo,
		NoColor: true,
	}))

	logger.Info("Transferred file.", "path", "/mnt/media/video.mkv")

	got := string(fp.receive(t))

	assert.Contains(t, got, "Transferred file.")
	assert.Contains(t, got, "/mnt/media/video.mkv")
	assert.True(t, strings.HasSuffix(got, "\n"), "log lines should stay newline-terminated")
}

// TestTeaLogWriter_Stop verifies that after Stop is called, subsequent Write
// calls do not send messages.
func TestTeaLogWriter_Stop(t *testing.T) {
	t.Parallel()

	fp := newFakeProgram()
	writer := NewTeaLogWriter(fp)

	_, _ = writer.Write([]byte("first message"))

	assert.Equal(t, LogMsg("first message"), fp.receive(t))

	writer.Stop()
	time.Sleep(50 * time.Millisecond)

	_, _ = writer.Write([]byte("late message"))

	select {
	case got := <-fp.msgs:
		t.Fatalf("expected no message after Stop, got: %v", got)
	case <-time.After(300 * time.Millisecond):
	}
}
