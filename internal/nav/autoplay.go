package nav

import "time"

// DefaultInterval is how long the carousel rests on an image before
// advancing on its own.
const DefaultInterval = 5 * time.Second

// Tick is one scheduled autoplay firing. It is only honoured if its epoch is
// still the current one when it arrives.
type Tick struct {
	Epoch uint64
	After time.Duration
}

// Autoplay is the carousel's timer handle. Every arm or disarm moves to a new
// epoch, which tears down whatever tick was previously in flight.
type Autoplay struct {
	interval time.Duration
	enabled  bool
	armed    bool
	epoch    uint64
}

func newAutoplay(interval time.Duration) Autoplay {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Autoplay{interval: interval, enabled: true}
}

// arm replaces the current handle. It returns the tick to schedule, or nil
// when autoplay is disabled.
func (a *Autoplay) arm() *Tick {
	a.epoch++
	a.armed = a.enabled
	if !a.armed {
		return nil
	}
	return &Tick{Epoch: a.epoch, After: a.interval}
}

func (a *Autoplay) disarm() {
	a.epoch++
	a.armed = false
}

func (a *Autoplay) fire(t Tick) bool {
	return a.armed && t.Epoch == a.epoch
}

// Armed reports whether a live tick is outstanding.
func (a *Autoplay) Armed() bool { return a.armed }

func (a *Autoplay) Interval() time.Duration { return a.interval }
