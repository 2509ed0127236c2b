package nav

import "sync"

// ScrollLock suppresses manual scrolling of the carousel track while held.
// Each Acquire must be paired with exactly one call of the returned release;
// extra calls are ignored.
type ScrollLock struct {
	holders int
}

func (l *ScrollLock) Acquire() (release func()) {
	l.holders++
	var once sync.Once
	return func() {
		once.Do(func() { l.holders-- })
	}
}

func (l *ScrollLock) Locked() bool {
	return l != nil && l.holders > 0
}
