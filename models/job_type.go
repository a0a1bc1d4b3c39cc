package models

import "github.com/pkg/errors"

// JobType discriminates the three posting kinds. Immutable after creation.
type JobType string

const (
	JobTypeTemporary JobType = "temporary"
	JobTypePermanent JobType = "permanent"
	JobTypeMultiDay  JobType = "multi_day_consulting"
)

var jobTypeHumanName = map[JobType]string{
	JobTypeTemporary: "Temporary",
	JobTypePermanent: "Permanent",
	JobTypeMultiDay:  "Multi-day consulting",
}

func (t JobType) ToHuman() string {
	if human, exist := jobTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

// IsSalaried reports whether proposals against this job carry a salary
// range instead of an hourly rate.
func (t JobType) IsSalaried() bool {
	return t == JobTypePermanent
}

func (t JobType) Validate() error {
	switch t {
	case JobTypeTemporary, JobTypePermanent, JobTypeMultiDay:
		return nil
	}
	return errors.Errorf("unknown job type (%v)", string(t))
}
