package cmd

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	switch c := result.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", c)
		return ""
	}
}

func newTestMCPServer(t *testing.T) (*mcpServer, *fakeWM) {
	t.Helper()
	fastConfig(t)
	wm := newFakeWM()
	return newMCPServerWith(wm, MCPConfig{Transport: "stdio", CacheTTL: time.Minute}), wm
}

func TestMCP_Raise(t *testing.T) {
	s, wm := newTestMCPServer(t)

	result, err := s.handleRaise(context.Background(), callRequest("raise", map[string]interface{}{
		"title":        "GlobalProtect",
		"session_type": "wayland",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var decoded RaiseResult
	if err := yaml.Unmarshal([]byte(resultText(t, result)), &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.OK || decoded.Mode != "compositor" || decoded.Waited {
		t.Errorf("unexpected result: %+v", decoded)
	}
	if ops := wm.Ops(); len(ops) != 2 || ops[0] != "Hide" || ops[1] != "Show" {
		t.Errorf("ops = %v", ops)
	}
}

func TestMCP_RaiseError(t *testing.T) {
	s, _ := newTestMCPServer(t)

	result, err := s.handleRaise(context.Background(), callRequest("raise", map[string]interface{}{
		"title":        "Missing",
		"session_type": "x11",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Fatal("expected a tool error")
	}
	if text := resultText(t, result); !strings.Contains(text, "ok: false") || !strings.Contains(text, "no such window") {
		t.Errorf("unexpected error body: %s", text)
	}
}

func TestMCP_Focus(t *testing.T) {
	s, wm := newTestMCPServer(t)
	wm.focusFails = 1

	result, err := s.handleFocus(context.Background(), callRequest("focus", map[string]interface{}{
		"title": "GlobalProtect",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var decoded FocusResult
	if err := yaml.Unmarshal([]byte(resultText(t, result)), &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.OK || decoded.Attempts != 2 {
		t.Errorf("unexpected result: %+v", decoded)
	}
}

func TestMCP_FocusExhausted(t *testing.T) {
	s, wm := newTestMCPServer(t)
	wm.focusFails = 100

	result, err := s.handleFocus(context.Background(), callRequest("focus", map[string]interface{}{
		"title":   "GlobalProtect",
		"retries": float64(1),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Fatal("expected a tool error")
	}
	if got := len(wm.Focused()); got != 2 {
		t.Errorf("focus attempts = %d, want 2", got)
	}
}

func TestMCP_List(t *testing.T) {
	s, _ := newTestMCPServer(t)

	result, err := s.handleList(context.Background(), callRequest("list", map[string]interface{}{
		"title": "term",
	}))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "title: Terminal") || strings.Contains(text, "GlobalProtect") {
		t.Errorf("unexpected list output: %s", text)
	}
}

func TestMCP_Session(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	s, _ := newTestMCPServer(t)

	result, err := s.handleSession(context.Background(), callRequest("session", nil))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); !strings.Contains(text, "mode: compositor") {
		t.Errorf("unexpected session output: %s", text)
	}
}

func TestMCP_ServeUnsupportedTransport(t *testing.T) {
	s, _ := newTestMCPServer(t)
	if err := s.serve(MCPConfig{Transport: "carrier-pigeon"}); err == nil {
		t.Fatal("expected error for unsupported transport")
	}
}

func TestParams(t *testing.T) {
	params := map[string]interface{}{
		"s": "text",
		"n": float64(3),
		"b": true,
	}
	if got := stringParam(params, "s", ""); got != "text" {
		t.Errorf("stringParam = %q", got)
	}
	if got := stringParam(params, "n", ""); got != "3" {
		t.Errorf("stringParam(number) = %q", got)
	}
	if got := intParam(params, "n", 0); got != 3 {
		t.Errorf("intParam = %d", got)
	}
	if got := intParam(params, "missing", -1); got != -1 {
		t.Errorf("intParam default = %d", got)
	}
	if got := boolParam(params, "b", false); !got {
		t.Error("boolParam = false")
	}
	if got := boolParam(params, "s", false); got {
		t.Error("boolParam on string should return default")
	}
}

func TestMCP_RaiseWait(t *testing.T) {
	s, wm := newTestMCPServer(t)

	result, err := s.handleRaise(context.Background(), callRequest("raise", map[string]interface{}{
		"title":        "GlobalProtect",
		"session_type": "x11",
		"wait":         true,
	}))
	if err != nil {
		t.Fatal(err)
	}
	var decoded RaiseResult
	if err := yaml.Unmarshal([]byte(resultText(t, result)), &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.OK || !decoded.Waited {
		t.Errorf("unexpected result: %+v", decoded)
	}
	if got := wm.Focused(); len(got) != 1 || got[0] != "GlobalProtect" {
		t.Errorf("focused = %v, want [GlobalProtect]", got)
	}
}

// heldFocuser records whether mu was held during each focus attempt.
type heldFocuser struct {
	mu    *sync.Mutex
	fails int
	held  []bool
}

func (f *heldFocuser) FocusByTitle(_ context.Context, _ string) error {
	locked := f.mu.TryLock()
	if locked {
		f.mu.Unlock()
	}
	f.held = append(f.held, !locked)
	if len(f.held) <= f.fails {
		return errors.New("exit status 1")
	}
	return nil
}

func TestLockedFocuser_LocksPerAttempt(t *testing.T) {
	fastConfig(t)
	var mu sync.Mutex
	inner := &heldFocuser{mu: &mu, fails: 2}

	result, err := executeFocus(context.Background(), lockedFocuser{mu: &mu, f: inner}, "GlobalProtect", 5, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if result.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", result.Attempts)
	}
	for i, held := range inner.held {
		if !held {
			t.Errorf("attempt %d ran without the lock", i+1)
		}
	}
	if !mu.TryLock() {
		t.Fatal("lock still held after the retry loop")
	}
	mu.Unlock()
}
