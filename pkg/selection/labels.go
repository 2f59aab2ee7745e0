package selection

// labelRegistry is the per-container bookkeeping of selection channels.
// Exclusive containers use holders, inclusive containers use sets.
type labelRegistry struct {
	known   map[Label]struct{}
	holders map[Label]*Item
	sets    map[Label]map[*Item]struct{}
}

func newLabelRegistry() *labelRegistry {
	return &labelRegistry{
		known:   make(map[Label]struct{}),
		holders: make(map[Label]*Item),
		sets:    make(map[Label]map[*Item]struct{}),
	}
}

func (r *labelRegistry) track(l Label) {
	r.known[l] = struct{}{}
}

// labels returns every label seen by the container, sorted.
func (r *labelRegistry) labels() []Label {
	labels := make([]Label, 0, len(r.known))
	for l := range r.known {
		labels = append(labels, l)
	}
	return sortLabels(labels)
}

func (r *labelRegistry) holder(l Label) *Item {
	return r.holders[l]
}

func (r *labelRegistry) setHolder(l Label, it *Item) {
	r.track(l)
	r.holders[l] = it
}

func (r *labelRegistry) clearHolder(l Label) {
	delete(r.holders, l)
}

// insert adds it to the label's set and reports whether the set changed.
func (r *labelRegistry) insert(l Label, it *Item) bool {
	r.track(l)
	set, ok := r.sets[l]
	if !ok {
		set = make(map[*Item]struct{})
		r.sets[l] = set
	}
	if _, exists := set[it]; exists {
		return false
	}
	set[it] = struct{}{}
	return true
}

// remove deletes it from the label's set and reports whether the set changed.
func (r *labelRegistry) remove(l Label, it *Item) bool {
	set, ok := r.sets[l]
	if !ok {
		return false
	}
	if _, exists := set[it]; !exists {
		return false
	}
	delete(set, it)
	return true
}

func (r *labelRegistry) contains(l Label, it *Item) bool {
	if h, ok := r.holders[l]; ok && h == it {
		return true
	}
	_, ok := r.sets[l][it]
	return ok
}

func (r *labelRegistry) size(l Label) int {
	if _, ok := r.holders[l]; ok {
		return 1
	}
	return len(r.sets[l])
}

// labelsOf returns the labels under which it is recorded as selected, sorted.
func (r *labelRegistry) labelsOf(it *Item) []Label {
	var labels []Label
	for l := range r.known {
		if r.contains(l, it) {
			labels = append(labels, l)
		}
	}
	return sortLabels(labels)
}

func (r *labelRegistry) clear() {
	r.known = make(map[Label]struct{})
	r.holders = make(map[Label]*Item)
	r.sets = make(map[Label]map[*Item]struct{})
}
