package raise

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/mj1618/desktop-raise/internal/platform"
)

type fakeWindow struct {
	mu      sync.Mutex
	calls   []string
	visible bool
	title   string
	menu    *fakeMenu

	hideErr    error
	showErr    error
	visibleErr error
	titleErr   error
}

func (w *fakeWindow) record(call string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call)
}

func (w *fakeWindow) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func (w *fakeWindow) IsVisible() (bool, error) {
	w.record("IsVisible")
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible, w.visibleErr
}

func (w *fakeWindow) Show() error {
	w.record("Show")
	if w.showErr != nil {
		return w.showErr
	}
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	return nil
}

func (w *fakeWindow) Hide() error {
	w.record("Hide")
	if w.hideErr != nil {
		return w.hideErr
	}
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	return nil
}

func (w *fakeWindow) Title() (string, error) {
	w.record("Title")
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title, w.titleErr
}

func (w *fakeWindow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
}

func (w *fakeWindow) Menu() platform.Menu {
	if w.menu == nil {
		w.menu = &fakeMenu{}
	}
	return w.menu
}

// fakeMenu reports the queued visibility values in order, then hidden.
type fakeMenu struct {
	mu      sync.Mutex
	visible []bool
	err     error
	checks  int
	hides   int
}

func (m *fakeMenu) IsVisible() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks++
	if m.err != nil {
		return true, m.err
	}
	if len(m.visible) == 0 {
		return false, nil
	}
	v := m.visible[0]
	m.visible = m.visible[1:]
	return v, nil
}

func (m *fakeMenu) Hide() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hides++
	return nil
}

func (m *fakeMenu) Counts() (checks, hides int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checks, m.hides
}

// fakeFocuser returns the queued results in order, then success.
type fakeFocuser struct {
	mu      sync.Mutex
	results []error
	titles  []string
}

func (f *fakeFocuser) FocusByTitle(_ context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	if len(f.results) == 0 {
		return nil
	}
	err := f.results[0]
	f.results = f.results[1:]
	return err
}

func (f *fakeFocuser) Titles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.titles...)
}

func failures(n int) []error {
	errs := make([]error, n)
	for i := range errs {
		errs[i] = errors.New("exit status 1")
	}
	return errs
}

// waitRecorder is a WaitFunc that returns immediately and records each delay.
type waitRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (w *waitRecorder) wait(_ context.Context, d time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delays = append(w.delays, d)
	return nil
}

func (w *waitRecorder) Delays() []time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]time.Duration(nil), w.delays...)
}

// syncBuffer guards a bytes.Buffer shared by a logger and background tasks.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestRaiser(f platform.Focuser, session string, w *waitRecorder, logs *syncBuffer) *Raiser {
	return New(f, Options{
		SessionType: func() string { return session },
		Logger:      log.New(logs, "", 0),
		Wait:        w.wait,
	})
}
