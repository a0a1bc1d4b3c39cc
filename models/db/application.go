package dbmodels

import (
	"time"

	"dental-staff-backend/models"
)

// JobApplication holds one professional's claim on one job. The composite
// unique index makes a duplicate apply a conditional-insert conflict rather
// than a racy check-then-put.
type JobApplication struct {
	BaseModel
	JobID               string      `gorm:"type:varchar(36);uniqueIndex:idx_job_professional"`
	Job                 *JobPosting `gorm:"foreignKey:JobID"`
	ProfessionalUserSub string      `gorm:"type:varchar(64);uniqueIndex:idx_job_professional"`
	ClinicID            string      `gorm:"type:varchar(36);index"`
	Status              models.ApplicationStatus `gorm:"type:varchar(50);index"`
	Message             string
	Availability        string
	StartDate           string `gorm:"type:varchar(50)"` // professional's earliest start, as submitted
	Notes               string
	ProposedRate        *float64
	FromInvitation      bool
	// agreed rate is mirrored under both names for downstream readers
	AcceptedHourlyRate *float64
	AcceptedRate       *float64
	AppliedAt          time.Time
}

func (a JobApplication) IsOpen() bool {
	return !a.Status.IsTerminal()
}

type ApplicationFilter struct {
	JobID    string                     `json:"job_id"`
	ClinicID string                     `json:"clinic_id"`
	Statuses []models.ApplicationStatus `json:"statuses"`
}
