package raise

import (
	"context"

	"github.com/mj1618/desktop-raise/internal/platform"
)

// suppressMenu hides menu until it reports hidden. A failed visibility
// query counts as hidden so a broken handle ends the loop.
func (r *Raiser) suppressMenu(menu platform.Menu) {
	for {
		visible, err := menu.IsVisible()
		if err != nil || !visible {
			return
		}
		_ = menu.Hide()
		_ = r.wait(context.Background(), r.menuPollDelay)
	}
}
