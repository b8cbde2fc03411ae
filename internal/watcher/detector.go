package watcher

import (
	"errors"
	"io/fs"
	"time"
)

type DetectorOptions struct {
	Interval time.Duration
	Now      func() time.Time
	Stat     StatFunc
}

// Detector decides whether any watched path was modified recently.
//
// The cutoff is widened to whole seconds so that filesystems with coarse
// timestamps do not hide changes. As a result the same modification stays
// inside the window for several checks, so the Detector remembers what each
// path looked like when it was last seen inside the window and only reports
// a path whose modification time or size differs from that.
type Detector struct {
	interval time.Duration
	now      func() time.Time
	stat     StatFunc
	seen     map[string]fingerprint
}

type fingerprint struct {
	modTime time.Time
	size    int64
}

func NewDetector(options DetectorOptions) *Detector {
	now := options.Now
	if now == nil {
		now = time.Now
	}
	return &Detector{
		interval: options.Interval,
		now:      now,
		stat:     defaultStat(options.Stat),
		seen:     make(map[string]fingerprint),
	}
}

// Cutoff is the current time truncated to the second, minus the interval.
func (d *Detector) Cutoff() time.Time {
	return d.now().Truncate(time.Second).Add(-d.interval)
}

// Check reports whether any path changed since the cutoff. Paths that no
// longer exist are skipped; any other stat failure is returned as a
// *StatError. Every path is examined so that edits landing in the same
// window produce a single change.
func (d *Detector) Check(paths WatchSet) (bool, error) {
	cutoff := d.Cutoff()
	changed := false
	for path := range paths {
		info, err := d.stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				delete(d.seen, path)
				continue
			}
			return false, &StatError{Path: path, Err: err}
		}
		current := fingerprint{modTime: info.ModTime(), size: info.Size()}
		if current.modTime.Before(cutoff) {
			delete(d.seen, path)
			continue
		}
		previous, ok := d.seen[path]
		if ok && previous.modTime.Equal(current.modTime) && previous.size == current.size {
			continue
		}
		d.seen[path] = current
		changed = true
	}
	return changed, nil
}
