package model

// StickyDesktop is the desktop index wmctrl reports for windows shown on
// every desktop.
const StickyDesktop = -1

// Window represents a window managed by the host window manager.
type Window struct {
	ID      string `yaml:"id"               json:"id"`
	Desktop int    `yaml:"desktop"          json:"desktop"`
	PID     int    `yaml:"pid,omitempty"    json:"pid,omitempty"`
	Host    string `yaml:"host,omitempty"   json:"host,omitempty"`
	Title   string `yaml:"title"            json:"title"`
	Sticky  bool   `yaml:"sticky,omitempty" json:"sticky,omitempty"`
}
