package cmd

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mj1618/desktop-raise/internal/model"
	"github.com/mj1618/desktop-raise/internal/platform"
)

// fakeWM is an in-memory platform.WindowManager.
type fakeWM struct {
	mu         sync.Mutex
	windows    []model.Window
	listErr    error
	listCalls  int
	focusFails int // number of FocusByTitle calls that fail before succeeding
	focused    []string
	hidden     map[string]bool
	ops        []string
}

func (f *fakeWM) FocusByTitle(_ context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = append(f.focused, title)
	if f.focusFails > 0 {
		f.focusFails--
		return errors.New("exit status 1")
	}
	return nil
}

func (f *fakeWM) ListWindows(_ context.Context) ([]model.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.windows, f.listErr
}

func (f *fakeWM) Window(title string) platform.Window {
	return &fakeWindow{wm: f, title: title}
}

func (f *fakeWM) Focused() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.focused...)
}

func (f *fakeWM) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

type fakeWindow struct {
	wm    *fakeWM
	title string
}

func (w *fakeWindow) IsVisible() (bool, error) {
	w.wm.mu.Lock()
	defer w.wm.mu.Unlock()
	w.wm.ops = append(w.wm.ops, "IsVisible")
	_, ok := model.FindByTitle(w.wm.windows, w.title)
	return ok && !w.wm.hidden[w.title], nil
}

func (w *fakeWindow) Show() error {
	w.wm.mu.Lock()
	defer w.wm.mu.Unlock()
	w.wm.ops = append(w.wm.ops, "Show")
	if _, ok := model.FindByTitle(w.wm.windows, w.title); !ok {
		return errors.New("no such window")
	}
	delete(w.wm.hidden, w.title)
	return nil
}

func (w *fakeWindow) Hide() error {
	w.wm.mu.Lock()
	defer w.wm.mu.Unlock()
	w.wm.ops = append(w.wm.ops, "Hide")
	if w.wm.hidden == nil {
		w.wm.hidden = make(map[string]bool)
	}
	w.wm.hidden[w.title] = true
	return nil
}

func (w *fakeWindow) Title() (string, error) {
	w.wm.mu.Lock()
	defer w.wm.mu.Unlock()
	w.wm.ops = append(w.wm.ops, "Title")
	return w.title, nil
}

func (w *fakeWindow) Menu() platform.Menu { return fakeMenu{} }

type fakeMenu struct{}

func (fakeMenu) IsVisible() (bool, error) { return false, nil }
func (fakeMenu) Hide() error              { return nil }

func newFakeWM() *fakeWM {
	return &fakeWM{
		windows: []model.Window{
			{ID: "0x01", Desktop: 0, PID: 100, Host: "laptop", Title: "GlobalProtect"},
			{ID: "0x02", Desktop: 1, PID: 200, Host: "laptop", Title: "Terminal"},
		},
	}
}

// useFakeProvider installs wm as the platform provider for the test.
func useFakeProvider(t *testing.T, wm platform.WindowManager) {
	orig := newProvider
	newProvider = func() (*platform.Provider, error) {
		return &platform.Provider{WindowManager: wm}, nil
	}
	t.Cleanup(func() { newProvider = orig })
}
