package marketplace

import "slices"

func (u *User) Clone() *User {
	out := *u
	out.Skills = slices.Clone(u.Skills)
	return &out
}

func (j *Job) Clone() *Job {
	out := *j
	out.Requirements = slices.Clone(j.Requirements)
	return &out
}

func (p *JobSeekerPreferences) Clone() *JobSeekerPreferences {
	out := *p
	out.JobTypes = slices.Clone(p.JobTypes)
	out.PreferredDomains = slices.Clone(p.PreferredDomains)
	out.WorkTypes = slices.Clone(p.WorkTypes)
	out.PreferredLocations = slices.Clone(p.PreferredLocations)
	out.SalaryMin = cloneInt(p.SalaryMin)
	out.SalaryMax = cloneInt(p.SalaryMax)
	out.AvailabilityDays = cloneInt(p.AvailabilityDays)
	out.HardSkills = slices.Clone(p.HardSkills)
	out.SoftSkills = slices.Clone(p.SoftSkills)
	out.CareerGoals = slices.Clone(p.CareerGoals)
	return &out
}

func (p *StartupJobPreferences) Clone() *StartupJobPreferences {
	out := *p
	out.MustHaveSkills = slices.Clone(p.MustHaveSkills)
	out.GoodToHaveSkills = slices.Clone(p.GoodToHaveSkills)
	out.HiringPriorities = slices.Clone(p.HiringPriorities)
	out.TeamSize = cloneInt(p.TeamSize)
	out.FlexibilityDays = cloneInt(p.FlexibilityDays)
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
