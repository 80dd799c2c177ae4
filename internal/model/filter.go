package model

import "strings"

// FilterWindows returns the windows whose title contains text
// (case-insensitive) and, when pid is non-zero, whose PID matches.
func FilterWindows(windows []Window, text string, pid int) []Window {
	if text == "" && pid == 0 {
		return windows
	}
	textLower := strings.ToLower(text)
	var result []Window
	for _, w := range windows {
		if pid != 0 && w.PID != pid {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(w.Title), textLower) {
			continue
		}
		result = append(result, w)
	}
	return result
}

// FindByTitle returns the first window whose title equals title exactly,
// the same rule wmctrl -F applies.
func FindByTitle(windows []Window, title string) (Window, bool) {
	for _, w := range windows {
		if w.Title == title {
			return w, true
		}
	}
	return Window{}, false
}
