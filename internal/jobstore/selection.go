package jobstore

import "slices"

// Selection is the set of job ids marked for a pending bulk operation.
// It is not tied to any filter: a selected job stays selected when it
// drops out of the current view.
type Selection struct {
	ids map[int]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{})}
}

func (s *Selection) Toggle(id int, included bool) {
	if included {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

func (s *Selection) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	clear(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
