package view

import (
	"time"

	"github.com/MontecalvoAm/portfolio/internal/loading"
	"github.com/MontecalvoAm/portfolio/internal/pager"
	"github.com/MontecalvoAm/portfolio/internal/typing"
	"github.com/MontecalvoAm/portfolio/internal/visibility"
)

// Options tunes the timings and thresholds of a page.
type Options struct {
	LoadingDelay    time.Duration
	TypingInterval  time.Duration
	RevealThreshold float64
	NavThreshold    float64
	NavMode         visibility.NavMode
	SkillsPageSize  int

	// VideoExists reports whether a project video can be served. Nil means
	// every video is assumed present.
	VideoExists func(path string) bool
}

// DefaultOptions returns the timings the site ships with.
func DefaultOptions() Options {
	return Options{
		LoadingDelay:    loading.DefaultDelay,
		TypingInterval:  typing.DefaultInterval,
		RevealThreshold: visibility.RevealThreshold,
		NavThreshold:    visibility.NavThreshold,
		NavMode:         visibility.NavSticky,
		SkillsPageSize:  pager.DefaultSize,
	}
}
