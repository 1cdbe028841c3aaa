// timer makes timing operations easier.
package timer

import (
	"time"

	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
)

// Timer is for timing events. When finished the duration is reported
// via sklog.
//
// The standard way to use Timer is at the top of the func you
// want to measure:
//
//	defer timer.New("checking expressions").Stop()
type Timer struct {
	begin time.Time
	name  string
	now   func() time.Time
}

// New starts a Timer.
func New(name string) *Timer {
	return newWithClock(name, time.Now)
}

func newWithClock(name string, now func() time.Time) *Timer {
	return &Timer{
		begin: now(),
		name:  name,
		now:   now,
	}
}

// Stop logs and returns the time elapsed since New.
func (t *Timer) Stop() time.Duration {
	d := t.now().Sub(t.begin)
	sklog.Infof("%s took %v", t.name, d)
	return d
}
