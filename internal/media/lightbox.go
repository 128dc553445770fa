package media

import "fmt"

// ClickTarget is the part of the open lightbox a visitor clicked.
type ClickTarget int

const (
	ClickBackdrop ClickTarget = iota
	ClickClose
	ClickVideo
)

// ParseClickTarget parses "backdrop", "close" or "video".
func ParseClickTarget(s string) (ClickTarget, error) {
	switch s {
	case "backdrop":
		return ClickBackdrop, nil
	case "close":
		return ClickClose, nil
	case "video":
		return ClickVideo, nil
	}
	return 0, fmt.Errorf("unknown lightbox click target %q", s)
}

// Lightbox holds the video shown full screen, if any.
type Lightbox struct {
	active string
}

// Open shows the video at path.
func (l *Lightbox) Open(path string) { l.active = path }

// Dismiss handles a click inside the open lightbox. Clicks on the video
// itself are swallowed. It reports whether the lightbox closed.
func (l *Lightbox) Dismiss(target ClickTarget) bool {
	if l.active == "" || target == ClickVideo {
		return false
	}
	l.active = ""
	return true
}

// Active returns the open video path and whether one is open.
func (l *Lightbox) Active() (string, bool) {
	return l.active, l.active != ""
}
