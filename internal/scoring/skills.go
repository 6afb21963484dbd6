package scoring

import "strings"

// skillSet is a case-insensitive set of skills that remembers insertion order.
type skillSet struct {
	index map[string]struct{}
	order []string
}

func newSkillSet(lists ...[]string) *skillSet {
	s := &skillSet{index: make(map[string]struct{})}
	for _, list := range lists {
		for _, skill := range list {
			s.add(skill)
		}
	}
	return s
}

func (s *skillSet) add(skill string) {
	key := strings.ToLower(strings.TrimSpace(skill))
	if key == "" {
		return
	}
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = struct{}{}
	s.order = append(s.order, key)
}

func (s *skillSet) Len() int {
	return len(s.order)
}

func (s *skillSet) Contains(skill string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// Intersect returns the members of other that are also in s, in other's order.
func (s *skillSet) Intersect(other *skillSet) []string {
	var out []string
	for _, key := range other.order {
		if _, ok := s.index[key]; ok {
			out = append(out, key)
		}
	}
	return out
}

// overlapPercent returns floor(100 * |have ∩ want| / |want|) and the matched skills.
// An empty want set yields zero.
func overlapPercent(have, want *skillSet) (int, []string) {
	if want.Len() == 0 || have.Len() == 0 {
		return 0, nil
	}
	matched := have.Intersect(want)
	return len(matched) * 100 / want.Len(), matched
}
