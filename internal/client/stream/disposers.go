package stream

import "sync"

// Disposers is a teardown list. Dispose runs every registered function
// once, in reverse order of registration.
type Disposers struct {
	mu       sync.Mutex
	fns      []func()
	disposed bool
}

// Add registers fn. If the list is already disposed fn runs immediately.
func (d *Disposers) Add(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		fn()
		return
	}
	d.fns = append(d.fns, fn)
	d.mu.Unlock()
}

// Dispose runs all registered functions. Later calls do nothing.
func (d *Disposers) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	fns := d.fns
	d.fns = nil
	d.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
