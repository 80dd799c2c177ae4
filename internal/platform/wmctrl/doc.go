// Package wmctrl drives an EWMH-compliant X11 window manager through the
// wmctrl command-line tool.
//
// Every request runs one wmctrl process. A request succeeds only when the
// process starts, completes, and exits with status zero.
package wmctrl
