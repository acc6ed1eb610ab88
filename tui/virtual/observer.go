package virtual

// Observers tracks the rows that are currently attached (rendered) and the
// height each one last reported. It plays the part of a per-row resize
// observer: a row is observed from Attach until Detach, and Notify only
// reports a height while the row is attached and when it differs from the
// previous report. Rows are keyed by identity, never by position.
type Observers struct {
	attached map[string]*observer
}

type observer struct {
	last int
	seen bool
}

// NewObservers creates an empty registry.
func NewObservers() Observers {
	return Observers{attached: make(map[string]*observer)}
}

// Attach starts observing key. Any observer already attached for key is
// disconnected first, so the next Notify always reports.
func (o *Observers) Attach(key string) {
	if o.attached == nil {
		o.attached = make(map[string]*observer)
	}
	o.Detach(key)
	o.attached[key] = &observer{}
}

// Attached reports whether key is being observed.
func (o Observers) Attached(key string) bool {
	_, ok := o.attached[key]
	return ok
}

// Detach stops observing key. Detaching an unknown key is a no-op.
func (o *Observers) Detach(key string) {
	delete(o.attached, key)
}

// Retain detaches every observer whose key is not in keys and returns how
// many were detached.
func (o *Observers) Retain(keys []string) int {
	keep := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keep[k] = struct{}{}
	}
	n := 0
	for k := range o.attached {
		if _, ok := keep[k]; !ok {
			delete(o.attached, k)
			n++
		}
	}
	return n
}

// Notify reports a rendered height for key. It returns true when the height
// should be recorded: the row is attached and this is its first report or
// the height changed.
func (o *Observers) Notify(key string, height int) bool {
	ob, ok := o.attached[key]
	if !ok {
		return false
	}
	if ob.seen && ob.last == height {
		return false
	}
	ob.seen = true
	ob.last = height
	return true
}

// Len returns the number of attached observers.
func (o Observers) Len() int {
	return len(o.attached)
}
