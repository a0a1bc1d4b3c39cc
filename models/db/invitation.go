package dbmodels

import (
	"time"

	"dental-staff-backend/models"
)

// JobInvitation is a clinic-initiated, targeted offer of a job to a specific
// professional. Once accepted or declined it is immutable.
type JobInvitation struct {
	BaseModel
	JobID               string      `gorm:"type:varchar(36);uniqueIndex:idx_invitation_job_professional"`
	Job                 *JobPosting `gorm:"foreignKey:JobID"`
	ProfessionalUserSub string      `gorm:"type:varchar(64);uniqueIndex:idx_invitation_job_professional"`
	ClinicID            string      `gorm:"type:varchar(36);index"`
	ClinicUserSub       string      `gorm:"type:varchar(64)"`
	Status              models.InvitationStatus `gorm:"type:varchar(50)"`
	Message             string
	OfferedHourlyRate   *float64
	OfferedSalaryMin    *int
	OfferedSalaryMax    *int
	ResponseMessage     string
	RespondedAt         *time.Time
}
