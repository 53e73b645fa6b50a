package cli

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// spinnerFrames are the braille animation frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner renders an animated progress indicator on stderr. It is safe to
// stop a spinner more than once.
type spinner struct {
	mu      sync.Mutex
	message string
	stopped bool
	done    chan struct{}
}

func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		done:    make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *spinner) Start() {
	go func() {
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.stopped {
					s.mu.Unlock()
					return
				}
				fmt.Fprintf(os.Stderr, "\r%s %s",
					styleIconSpinner.Render(spinnerFrames[frame]), s.message)
				s.mu.Unlock()
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// Stop halts the animation and clears the line.
func (s *spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)
	fmt.Fprintf(os.Stderr, "\r\033[K")
}

// StopWithSuccess halts the animation and prints a success line.
func (s *spinner) StopWithSuccess(message string) {
	s.Stop()
	fmt.Fprintf(os.Stderr, "%s %s\n", styleIconSuccess.Render(iconSuccess), message)
}

// StopWithError halts the animation and prints an error line.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	fmt.Fprintf(os.Stderr, "%s %s\n", styleIconError.Render(iconError), message)
}
