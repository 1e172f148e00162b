package library

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"
)

const progressNameWidth = 32

// loadProgress reports a batch load on a writer: files finished out of the
// total, failures so far and the last file finished. Methods on a nil
// *loadProgress do nothing.
type loadProgress struct {
	mu      sync.Mutex
	w       io.Writer
	total   int
	done    int
	failed  int
	started time.Time
}

func newLoadProgress(w io.Writer, total int) *loadProgress {
	if w == nil {
		return nil
	}
	return &loadProgress{w: w, total: total, started: time.Now()}
}

// record counts one finished file and redraws the progress line.
func (p *loadProgress) record(path string, err error) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = min(p.done+1, p.total)
	if err != nil {
		p.failed++
	}

	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.done) / float64(p.total) * 100.0
	}
	fmt.Fprintf(p.w, "\rLoading: %d/%d (%.1f%%), %d failed, %-*s",
		p.done, p.total, percentage, p.failed, progressNameWidth, shortName(path))
}

// finish ends the progress line with the number of documents that made it
// into the library.
func (p *loadProgress) finish(loaded int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.started).Round(time.Millisecond)
	fmt.Fprintf(p.w, "\rLoaded %d/%d documents, %d failed, in %s\n",
		loaded, p.total, p.total-loaded, elapsed)
}

// shortName is the base name of path cut to progressNameWidth runes.
func shortName(path string) string {
	name := []rune(filepath.Base(path))
	if len(name) <= progressNameWidth {
		return string(name)
	}
	return string(name[:progressNameWidth-3]) + "..."
}
