package dbmodels

import (
	"time"

	"dental-staff-backend/models"
)

// JobNegotiation is one counter-proposal conversation tied to exactly one
// application. Exactly one of the hourly or salary-range fields is
// populated, selected by the parent job's type. Each actor stamps only its
// own response fields; the other party's fields are never overwritten.
type JobNegotiation struct {
	BaseModel
	ApplicationID string          `gorm:"type:varchar(36);index"`
	Application   *JobApplication `gorm:"foreignKey:ApplicationID"`
	JobID         string          `gorm:"type:varchar(36);index"`
	Status        models.NegotiationStatus `gorm:"type:varchar(50)"`
	FromType      models.ActorType         `gorm:"type:varchar(20)"` // who opened the negotiation

	ProposedHourlyRate *float64
	ProposedSalaryMin  *int
	ProposedSalaryMax  *int

	ClinicCounterHourlyRate       *float64
	ProfessionalCounterHourlyRate *float64
	CounterSalaryMin              *int
	CounterSalaryMax              *int

	ClinicResponse          string `gorm:"type:varchar(50)"`
	ClinicMessage           string
	ClinicRespondedAt       *time.Time
	ProfessionalResponse    string `gorm:"type:varchar(50)"`
	ProfessionalMessage     string
	ProfessionalRespondedAt *time.Time

	AgreedHourlyRate *float64
}
