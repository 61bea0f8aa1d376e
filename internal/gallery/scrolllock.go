package gallery

import "sync"

// ScrollLock counts holders of the page scroll lock. A rendered page
// consults its own Viewer.Locked; Held reports whether any viewer sharing
// this lock is open, which is only meaningful as a per-process diagnostic.
type ScrollLock struct {
	mu      sync.Mutex
	holders int
}

// Acquire takes the lock and returns its release function. Calling the
// release function more than once has no further effect.
func (s *ScrollLock) Acquire() (release func()) {
	s.mu.Lock()
	s.holders++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.holders--
			s.mu.Unlock()
		})
	}
}

// Held reports whether any holder is active.
func (s *ScrollLock) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holders > 0
}

// Viewer binds a lightbox to the scroll lock: the lock is held exactly while
// the lightbox is open, whichever way it closes.
type Viewer struct {
	Lightbox

	lock    *ScrollLock
	release func()
}

// NewViewer returns a closed viewer.
func NewViewer(lock *ScrollLock) *Viewer {
	return &Viewer{lock: lock}
}

// Show opens the lightbox and acquires the lock on success.
func (v *Viewer) Show(catalog Catalog, c, i int) bool {
	if !v.OpenAt(catalog, c, i) {
		return false
	}
	if v.release == nil && v.lock != nil {
		v.release = v.lock.Acquire()
	}
	return true
}

// Close closes the lightbox and releases the lock.
func (v *Viewer) Close() {
	v.Lightbox.Close()
	v.unlock()
}

// HandleKey forwards to the lightbox and releases the lock when the key
// closed it.
func (v *Viewer) HandleKey(key string) bool {
	ok := v.Lightbox.HandleKey(key)
	if !v.Open {
		v.unlock()
	}
	return ok
}

// Unmount tears the viewer down without going through Close, e.g. when the
// page is left by navigation. It always releases the lock.
func (v *Viewer) Unmount() {
	v.Lightbox.Open = false
	v.unlock()
}

// Locked reports whether this viewer currently holds the scroll lock.
func (v *Viewer) Locked() bool { return v.release != nil }

func (v *Viewer) unlock() {
	if v.release != nil {
		v.release()
		v.release = nil
	}
}
