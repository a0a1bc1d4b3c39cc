package applicationapimodels

import (
	"time"

	"github.com/pkg/errors"

	"dental-staff-backend/models"
	apimodels "dental-staff-backend/models/api"
	clinicapimodels "dental-staff-backend/models/api/clinic"
	jobapimodels "dental-staff-backend/models/api/job"
	dbmodels "dental-staff-backend/models/db"
)

// ApplyRequest is the body of POST /jobs/{id}/apply. The job id may come
// from the path or the body; the path wins when both are present.
type ApplyRequest struct {
	JobID        string   `json:"job_id"`
	Message      string   `json:"message"`
	ProposedRate *float64 `json:"proposed_rate"`
	Availability string   `json:"availability"`
	StartDate    string   `json:"start_date"`
	Notes        string   `json:"notes"`
}

func (r ApplyRequest) Validate() error {
	if r.JobID == "" {
		return errors.New("job id is required")
	}
	if r.ProposedRate != nil && *r.ProposedRate <= 0 {
		return errors.New("proposed rate must be positive")
	}
	return nil
}

type ApplyResponse struct {
	ApplicationID     string                       `json:"application_id"`
	ApplicationStatus models.ApplicationStatus     `json:"application_status"`
	Job               jobapimodels.JobView         `json:"job"`
	Clinic            *clinicapimodels.ClinicView  `json:"clinic,omitempty"` // best-effort enrichment
}

type ApplicationView struct {
	ID                  string                   `json:"id"`
	JobID               string                   `json:"job_id"`
	ClinicID            string                   `json:"clinic_id"`
	ProfessionalUserSub string                   `json:"professional_user_sub"`
	Status              models.ApplicationStatus `json:"status"`
	Message             string                   `json:"message,omitempty"`
	Availability        string                   `json:"availability,omitempty"`
	StartDate           string                   `json:"start_date,omitempty"`
	Notes               string                   `json:"notes,omitempty"`
	ProposedRate        *float64                 `json:"proposed_rate,omitempty"`
	AcceptedHourlyRate  *float64                 `json:"accepted_hourly_rate,omitempty"`
	AcceptedRate        *float64                 `json:"accepted_rate,omitempty"`
	FromInvitation      bool                     `json:"from_invitation"`
	AppliedAt           time.Time                `json:"applied_at"`
}

func ApplicationConvert(rec dbmodels.JobApplication) ApplicationView {
	return ApplicationView{
		ID:                  rec.ID,
		JobID:               rec.JobID,
		ClinicID:            rec.ClinicID,
		ProfessionalUserSub: rec.ProfessionalUserSub,
		Status:              rec.Status,
		Message:             rec.Message,
		Availability:        rec.Availability,
		StartDate:           rec.StartDate,
		Notes:               rec.Notes,
		ProposedRate:        rec.ProposedRate,
		AcceptedHourlyRate:  rec.AcceptedHourlyRate,
		AcceptedRate:        rec.AcceptedRate,
		FromInvitation:      rec.FromInvitation,
		AppliedAt:           rec.AppliedAt,
	}
}

type ApplicationFilter struct {
	dbmodels.ApplicationFilter
	apimodels.Pagination
}
