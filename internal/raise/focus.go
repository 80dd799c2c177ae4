package raise

import (
	"context"
	"errors"
	"fmt"
)

// ErrFocusExhausted is returned when every focus attempt failed.
var ErrFocusExhausted = errors.New("failed to raise window")

// FocusWithRetry asks the window manager to focus the window titled title.
// The first attempt runs immediately; each failure is followed by the
// configured delay and another attempt until the retry budget is spent.
// It returns the number of attempts made.
//
// Every kind of attempt failure counts the same. When the budget is spent
// the returned error wraps both ErrFocusExhausted and the last failure.
func (r *Raiser) FocusWithRetry(ctx context.Context, title string) (int, error) {
	for attempt := 1; ; attempt++ {
		err := r.focuser.FocusByTitle(ctx, title)
		if err == nil {
			r.logger.Printf("window raised after %d attempts", attempt)
			return attempt, nil
		}
		if attempt > r.retries {
			return attempt, fmt.Errorf("%w %q after %d attempts: %w", ErrFocusExhausted, title, attempt, err)
		}
		if err := r.wait(ctx, r.focusDelay); err != nil {
			return attempt, fmt.Errorf("focus %q: %w", title, err)
		}
	}
}

// focusInBackground runs the focus loop without a deadline. Nothing can
// stop it early; it ends on success or when retries run out.
func (r *Raiser) focusInBackground(title string) {
	if _, err := r.FocusWithRetry(context.Background(), title); err != nil {
		r.logger.Printf("window not raised: %v", err)
	}
}
