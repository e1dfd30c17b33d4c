package workflow

// SelectionSet is the user's in-progress itinerary picklist. Membership is
// unique and iteration follows first-selected-first order, so the day planner
// receives IDs in the order the user picked them.
type SelectionSet struct {
	order    []int
	members  map[int]bool
	onChange func(ids []int)
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{members: map[int]bool{}}
}

// SetListener registers a callback invoked with the current selection after
// every change. Used for counter and checkbox synchronization.
func (s *SelectionSet) SetListener(fn func(ids []int)) {
	s.onChange = fn
}

// Toggle flips membership of id and reports the new state.
// Toggling twice returns the set to its prior state.
func (s *SelectionSet) Toggle(id int) bool {
	if s.members[id] {
		delete(s.members, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		s.notify()
		return false
	}
	s.members[id] = true
	s.order = append(s.order, id)
	s.notify()
	return true
}

// Clear empties the selection unconditionally.
func (s *SelectionSet) Clear() {
	s.order = nil
	s.members = map[int]bool{}
	s.notify()
}

// Contains reports whether id is selected.
func (s *SelectionSet) Contains(id int) bool {
	return s.members[id]
}

// Selected returns the selected IDs in insertion order.
func (s *SelectionSet) Selected() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

func (s *SelectionSet) Len() int {
	return len(s.order)
}

func (s *SelectionSet) notify() {
	if s.onChange != nil {
		s.onChange(s.Selected())
	}
}
