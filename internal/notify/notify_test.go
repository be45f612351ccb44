package notify

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesNameTheApp(t *testing.T) {
	assert.Equal(t, "Please allow MouseJump in Accessibility settings.", PermissionRequired)
	assert.Equal(t, "Accessibility permission lost. MouseJump is paused.", PermissionLost)
}

func TestLogNotifierWritesError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogNotifier{Logger: logger}.Notify(TapFailed)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, TapFailed)
}

func TestMultiFansOut(t *testing.T) {
	var a, b Recorder
	var seen []string
	m := Multi{&a, nil, &b, NotifierFunc(func(msg string) { seen = append(seen, msg) })}

	m.Notify(PermissionLost)
	m.Notify(PermissionRestored)

	want := []string{PermissionLost, PermissionRestored}
	assert.Equal(t, want, a.Messages())
	assert.Equal(t, want, b.Messages())
	assert.Equal(t, want, seen)
}

type desktopCalls struct {
	titles   []string
	messages []string
	beeps    int
}

func newTestDesktop(withBeep bool, notifyErr error) (*DesktopNotifier, *desktopCalls, *bytes.Buffer) {
	calls := &desktopCalls{}
	var buf bytes.Buffer
	d := NewDesktop(withBeep, slog.New(slog.NewTextHandler(&buf, nil)))
	d.notify = func(title, message string, _ any) error {
		calls.titles = append(calls.titles, title)
		calls.messages = append(calls.messages, message)
		return notifyErr
	}
	d.beep = func(float64, int) error {
		calls.beeps++
		return nil
	}
	return d, calls, &buf
}

func TestDesktopNotifierBeepsOnlyOnAlarms(t *testing.T) {
	d, calls, _ := newTestDesktop(true, nil)

	d.Notify(PermissionRestored)
	d.Notify(PermissionLost)
	d.Notify(TapFailed)

	assert.Equal(t, []string{AppName, AppName, AppName}, calls.titles)
	assert.Equal(t, []string{PermissionRestored, PermissionLost, TapFailed}, calls.messages)
	assert.Equal(t, 2, calls.beeps)
}

func TestDesktopNotifierWithoutBeep(t *testing.T) {
	d, calls, _ := newTestDesktop(false, nil)
	d.Notify(PermissionLost)
	assert.Zero(t, calls.beeps)
	require.Len(t, calls.messages, 1)
}

func TestDesktopNotifierLogsFailures(t *testing.T) {
	d, _, buf := newTestDesktop(false, errors.New("no notification daemon"))
	d.Notify(PermissionRestored)
	assert.Contains(t, buf.String(), "no notification daemon")
}
