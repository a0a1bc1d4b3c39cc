package invitationapimodels

import (
	"time"

	"github.com/pkg/errors"

	"dental-staff-backend/models"
	negotiationapimodels "dental-staff-backend/models/api/negotiation"
	dbmodels "dental-staff-backend/models/db"
)

type InvitationData struct {
	JobID               string   `json:"job_id"`
	ProfessionalUserSub string   `json:"professional_user_sub"`
	Message             string   `json:"message"`
	OfferedHourlyRate   *float64 `json:"offered_hourly_rate"`
	OfferedSalaryMin    *int     `json:"offered_salary_min"`
	OfferedSalaryMax    *int     `json:"offered_salary_max"`
}

func (d InvitationData) Validate() error {
	if d.JobID == "" {
		return errors.New("job id is required")
	}
	if d.ProfessionalUserSub == "" {
		return errors.New("professional user sub is required")
	}
	return nil
}

// RespondRequest is the body of POST /invitations/{id}/response.
type RespondRequest struct {
	Response               models.InvitationStatus `json:"response"`
	Message                string                  `json:"message"`
	ProposedHourlyRate     *float64                `json:"proposed_hourly_rate"`
	ProposedSalaryMin      *int                    `json:"proposed_salary_min"`
	ProposedSalaryMax      *int                    `json:"proposed_salary_max"`
	AvailabilityNotes      string                  `json:"availability_notes"`
	CounterProposalMessage string                  `json:"counter_proposal_message"`
}

func (r RespondRequest) Validate() error {
	switch r.Response {
	case models.InvitationStatusAccepted, models.InvitationStatusDeclined, models.InvitationStatusNegotiating:
		return nil
	}
	return errors.Errorf("response must be one of accepted/declined/negotiating, got (%v)", string(r.Response))
}

// Proposal reshapes counter-terms for shape validation against the job type.
func (r RespondRequest) Proposal() negotiationapimodels.Proposal {
	return negotiationapimodels.Proposal{
		HourlyRate: r.ProposedHourlyRate,
		SalaryMin:  r.ProposedSalaryMin,
		SalaryMax:  r.ProposedSalaryMax,
	}
}

type RespondResponse struct {
	InvitationID  string                  `json:"invitation_id"`
	JobID         string                  `json:"job_id"`
	Response      models.InvitationStatus `json:"response"`
	ApplicationID string                  `json:"application_id,omitempty"` // empty when declined
	NextSteps     string                  `json:"next_steps"`
}

type InvitationView struct {
	ID                  string                  `json:"id"`
	JobID               string                  `json:"job_id"`
	ClinicID            string                  `json:"clinic_id"`
	ProfessionalUserSub string                  `json:"professional_user_sub"`
	Status              models.InvitationStatus `json:"status"`
	Message             string                  `json:"message,omitempty"`
	OfferedHourlyRate   *float64                `json:"offered_hourly_rate,omitempty"`
	OfferedSalaryMin    *int                    `json:"offered_salary_min,omitempty"`
	OfferedSalaryMax    *int                    `json:"offered_salary_max,omitempty"`
	ResponseMessage     string                  `json:"response_message,omitempty"`
	RespondedAt         *time.Time              `json:"responded_at,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
}

func InvitationConvert(rec dbmodels.JobInvitation) InvitationView {
	return InvitationView{
		ID:                  rec.ID,
		JobID:               rec.JobID,
		ClinicID:            rec.ClinicID,
		ProfessionalUserSub: rec.ProfessionalUserSub,
		Status:              rec.Status,
		Message:             rec.Message,
		OfferedHourlyRate:   rec.OfferedHourlyRate,
		OfferedSalaryMin:    rec.OfferedSalaryMin,
		OfferedSalaryMax:    rec.OfferedSalaryMax,
		ResponseMessage:     rec.ResponseMessage,
		RespondedAt:         rec.RespondedAt,
		CreatedAt:           rec.CreatedAt,
	}
}
