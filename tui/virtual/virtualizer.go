// Package virtual windows a long list of variable-height rows onto a
// terminal viewport. Rows are addressed in lines; only the rows that
// intersect the viewport (plus an overscan margin) are materialized, and a
// row's estimated height is replaced by its measured height once it renders.
package virtual

import "sort"

// Item is one materialized row of the window.
type Item struct {
	Index    int
	Key      string
	Start    int // First line of the row in list space
	Size     int // Height in lines
	Measured bool
}

// End returns the line just past the row.
func (it Item) End() int {
	return it.Start + it.Size
}

// Options configures a Virtualizer.
type Options struct {
	// Estimate returns the height of row index before it has been measured.
	Estimate func(index int) int
	// Overscan is the number of extra rows materialized on each side.
	Overscan int
	// Gap is the number of blank lines between consecutive rows.
	Gap int
}

// Virtualizer holds the row keys, their heights and the scroll position.
// Measurements are keyed by row key, so reordering rows keeps them.
type Virtualizer struct {
	keys     []string
	index    map[string]int
	estimate func(int) int
	overscan int
	gap      int
	viewport int
	offset   int
	measured map[string]int
	starts   []int
	sizes    []int
}

// New creates an empty Virtualizer.
func New(opts Options) Virtualizer {
	v := Virtualizer{
		estimate: opts.Estimate,
		overscan: max(opts.Overscan, 0),
		gap:      max(opts.Gap, 0),
		index:    make(map[string]int),
		measured: make(map[string]int),
	}
	if v.estimate == nil {
		v.estimate = func(int) int { return 1 }
	}
	return v
}

// SetRows replaces the row keys. A nil estimate keeps the current one.
// Measurements of keys that left the list are dropped, so a row that comes
// back is measured again.
func (v *Virtualizer) SetRows(keys []string, estimate func(int) int) {
	if v.measured == nil {
		v.measured = make(map[string]int)
	}
	if estimate != nil {
		v.estimate = estimate
	}
	if v.estimate == nil {
		v.estimate = func(int) int { return 1 }
	}
	v.keys = append([]string(nil), keys...)
	v.index = make(map[string]int, len(keys))
	for i, k := range v.keys {
		v.index[k] = i
	}
	for k := range v.measured {
		if _, ok := v.index[k]; !ok {
			delete(v.measured, k)
		}
	}
	v.relayout()
	v.clamp()
}

func (v *Virtualizer) relayout() {
	n := len(v.keys)
	v.starts = make([]int, n)
	v.sizes = make([]int, n)
	pos := 0
	for i, k := range v.keys {
		size, ok := v.measured[k]
		if !ok {
			size = max(v.estimate(i), 1)
		}
		v.starts[i] = pos
		v.sizes[i] = size
		pos += size
		if i < n-1 {
			pos += v.gap
		}
	}
}

// Len returns the number of rows.
func (v Virtualizer) Len() int {
	return len(v.keys)
}

// Key returns the key of row i, or "" when i is out of range.
func (v Virtualizer) Key(i int) string {
	if i < 0 || i >= len(v.keys) {
		return ""
	}
	return v.keys[i]
}

// IndexOf returns the current index of the row with key.
func (v Virtualizer) IndexOf(key string) (int, bool) {
	i, ok := v.index[key]
	return i, ok
}

// Item returns the layout of row i.
func (v Virtualizer) Item(i int) (Item, bool) {
	if i < 0 || i >= len(v.keys) {
		return Item{}, false
	}
	_, measured := v.measured[v.keys[i]]
	return Item{
		Index:    i,
		Key:      v.keys[i],
		Start:    v.starts[i],
		Size:     v.sizes[i],
		Measured: measured,
	}, true
}

// TotalSize returns the height of the whole list in lines, gaps included.
func (v Virtualizer) TotalSize() int {
	n := len(v.keys)
	if n == 0 {
		return 0
	}
	return v.starts[n-1] + v.sizes[n-1]
}

// SetViewport sets the number of visible lines.
func (v *Virtualizer) SetViewport(height int) {
	v.viewport = max(height, 0)
	v.clamp()
}

// Viewport returns the number of visible lines.
func (v Virtualizer) Viewport() int {
	return v.viewport
}

// Offset returns the first visible line.
func (v Virtualizer) Offset() int {
	return v.offset
}

// MaxOffset returns the largest valid scroll offset.
func (v Virtualizer) MaxOffset() int {
	return max(v.TotalSize()-v.viewport, 0)
}

func (v *Virtualizer) clamp() {
	v.offset = min(max(v.offset, 0), v.MaxOffset())
}

// ScrollTo moves the viewport to start at line offset, clamped to the list.
func (v *Virtualizer) ScrollTo(offset int) {
	v.offset = offset
	v.clamp()
}

// ScrollBy moves the viewport by delta lines.
func (v *Virtualizer) ScrollBy(delta int) {
	v.ScrollTo(v.offset + delta)
}

// ScrollToIndex aligns the top of row i with the top of the viewport.
func (v *Virtualizer) ScrollToIndex(i int) {
	if i < 0 || i >= len(v.keys) {
		return
	}
	v.ScrollTo(v.starts[i])
}

// EnsureVisible scrolls the minimum amount needed to show row i. Rows taller
// than the viewport are aligned to their top.
func (v *Virtualizer) EnsureVisible(i int) {
	if i < 0 || i >= len(v.keys) {
		return
	}
	top := v.starts[i]
	bottom := top + v.sizes[i]
	switch {
	case top < v.offset:
		v.offset = top
	case bottom > v.offset+v.viewport:
		v.offset = min(bottom-v.viewport, top)
	}
	v.clamp()
}

// IndexAt returns the row covering line, or the row just above it when
// line falls on a gap. It returns -1 for an empty list.
func (v Virtualizer) IndexAt(line int) int {
	n := len(v.keys)
	if n == 0 {
		return -1
	}
	line = max(line, 0)
	i := sort.Search(n, func(i int) bool { return v.starts[i] > line }) - 1
	return max(i, 0)
}

// VisibleRange returns the first and last rows that intersect the viewport.
func (v Virtualizer) VisibleRange() (first, last int, ok bool) {
	n := len(v.keys)
	if n == 0 {
		return 0, -1, false
	}
	first = v.IndexAt(v.offset)
	if v.starts[first]+v.sizes[first] <= v.offset && first < n-1 {
		first++
	}
	last = v.IndexAt(v.offset + max(v.viewport, 1) - 1)
	return first, max(last, first), true
}

// Items returns the materialized window: the visible rows plus overscan.
func (v Virtualizer) Items() []Item {
	first, last, ok := v.VisibleRange()
	if !ok {
		return nil
	}
	from := max(first-v.overscan, 0)
	to := min(last+v.overscan, len(v.keys)-1)
	items := make([]Item, 0, to-from+1)
	for i := from; i <= to; i++ {
		it, _ := v.Item(i)
		items = append(items, it)
	}
	return items
}

// Measure records the rendered height of the row with key and reports
// whether the cached height was replaced. Unknown keys are ignored. When a
// row starting above the viewport changes size, the offset moves with it so
// the visible content does not jump.
func (v *Virtualizer) Measure(key string, height int) bool {
	i, ok := v.index[key]
	if !ok {
		return false
	}
	height = max(height, 1)
	if prev, ok := v.measured[key]; ok && prev == height {
		return false
	}
	v.measured[key] = height
	delta := height - v.sizes[i]
	if delta == 0 {
		return true
	}
	above := v.starts[i] < v.offset
	v.relayout()
	if above {
		v.offset += delta
	}
	v.clamp()
	return true
}

// MeasureIndex is Measure addressed by position; stale indexes are ignored.
func (v *Virtualizer) MeasureIndex(i, height int) bool {
	if i < 0 || i >= len(v.keys) {
		return false
	}
	return v.Measure(v.keys[i], height)
}

// Invalidate forgets the measurement of key so its estimate is used again.
func (v *Virtualizer) Invalidate(key string) {
	if _, ok := v.measured[key]; !ok {
		return
	}
	delete(v.measured, key)
	v.relayout()
	v.clamp()
}

// IsMeasured reports whether key has a measured height.
func (v Virtualizer) IsMeasured(key string) bool {
	_, ok := v.measured[key]
	return ok
}

// NearEnd reports whether the bottom of the viewport is within threshold
// lines of the end of the list.
func (v Virtualizer) NearEnd(threshold int) bool {
	if len(v.keys) == 0 {
		return false
	}
	return v.offset+v.viewport >= v.TotalSize()-threshold
}
