//go:build linux || freebsd || openbsd || netbsd

package wmctrl

import (
	"os"

	"github.com/mj1618/desktop-raise/internal/platform"
)

// PathEnv overrides the wmctrl binary used by the registered provider.
const PathEnv = "DESKTOP_RAISE_WMCTRL"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			WindowManager: NewClient(os.Getenv(PathEnv), nil),
		}, nil
	}
}
