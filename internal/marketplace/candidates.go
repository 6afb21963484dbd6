package marketplace

const (
	CandidateIDField   = "ID"
	CandidateRoleField = "Role"
)

// Candidate is a job seeker together with their matching profile, if any.
type Candidate struct {
	User        User
	Preferences *JobSeekerPreferences
}

// Eligible reports whether the candidate may receive matches.
func (c *Candidate) Eligible() bool {
	return c != nil && c.Preferences != nil && c.Preferences.Completed
}

func (c *Candidate) GetStringField(name string) string {
	switch name {
	case CandidateIDField:
		return c.User.ID
	case CandidateRoleField:
		return c.User.Role
	default:
		return ""
	}
}

// Candidates is an ordered candidate pool. Order matters: ranking ties keep it.
type Candidates struct {
	Items []*Candidate
}

func NewCandidates(items ...*Candidate) *Candidates {
	return &Candidates{Items: items}
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, c.Len())
	for _, candidate := range c.Items {
		ids = append(ids, candidate.User.ID)
	}
	return ids
}

// Exclude drops candidates whose field equals any of targets and returns the dropped ids.
// The relative order of the remaining candidates is preserved.
func (c *Candidates) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		drop[target] = struct{}{}
	}

	return c.Retain(func(candidate *Candidate) bool {
		_, found := drop[candidate.GetStringField(name)]
		return !found
	})
}

// Retain keeps only candidates for which keep returns true and returns the dropped ids.
func (c *Candidates) Retain(keep func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if keep(candidate) {
			kept = append(kept, candidate)
			continue
		}
		excluded = append(excluded, candidate.User.ID)
	}

	// release references held by the tail of the backing array
	for i := len(kept); i < len(c.Items); i++ {
		c.Items[i] = nil
	}
	c.Items = kept

	return excluded
}
