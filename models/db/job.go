package dbmodels

import (
	"time"

	"dental-staff-backend/models"
)

type JobPosting struct {
	BaseModel
	ClinicID      string  `gorm:"type:varchar(36);index"`
	Clinic        *Clinic `gorm:"foreignKey:ClinicID"`
	ClinicUserSub string  `gorm:"type:varchar(64);index"` // posting owner's subject
	Title         string  `gorm:"type:varchar(255)"`
	Description   string
	JobType       models.JobType   `gorm:"type:varchar(50)"` // immutable after creation
	Status        models.JobStatus `gorm:"type:varchar(50);index"`
	// Address snapshot taken from the clinic at posting time.
	Address
	HourlyRate float64
	SalaryMin  int
	SalaryMax  int
	StartDate  time.Time
	EndDate    time.Time
	HoursPerDay int
	// Stamped when an invitation or negotiation is accepted.
	AcceptedProfessionalSub string `gorm:"type:varchar(64)"`
}

type JobFilter struct {
	ClinicID string             `json:"clinic_id"`
	Statuses []models.JobStatus `json:"statuses"`
	JobType  models.JobType     `json:"job_type"`
	City     string             `json:"city"`
	Search   string             `json:"search"`
}
