package main

import (
	"github.com/mj1618/desktop-raise/cmd"

	// Registers the X11 window manager backend.
	_ "github.com/mj1618/desktop-raise/internal/platform/wmctrl"
)

func main() {
	cmd.Execute()
}
