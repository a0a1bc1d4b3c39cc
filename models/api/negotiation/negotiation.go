package negotiationapimodels

import (
	"time"

	"github.com/pkg/errors"

	"dental-staff-backend/models"
	dbmodels "dental-staff-backend/models/db"
)

// Proposal carries counter-terms for either entry point. Shape depends on
// the parent job's type: permanent jobs take a salary range, everything else
// an hourly rate. The two are mutually exclusive.
type Proposal struct {
	HourlyRate *float64 `json:"proposed_hourly_rate"`
	SalaryMin  *int     `json:"proposed_salary_min"`
	SalaryMax  *int     `json:"proposed_salary_max"`
}

func (p Proposal) HasSalary() bool {
	return p.SalaryMin != nil || p.SalaryMax != nil
}

// ValidateFor checks the proposal shape against the job type.
func (p Proposal) ValidateFor(jobType models.JobType) error {
	if jobType.IsSalaried() {
		if p.HourlyRate != nil {
			return errors.New("permanent jobs negotiate a salary range, not an hourly rate")
		}
		if p.SalaryMin == nil || p.SalaryMax == nil {
			return errors.New("proposed_salary_min and proposed_salary_max are both required for permanent jobs")
		}
		if *p.SalaryMin >= *p.SalaryMax {
			return errors.New("proposed_salary_min must be below proposed_salary_max")
		}
		return nil
	}
	if p.HasSalary() {
		return errors.Errorf("%v jobs negotiate an hourly rate, not a salary range", jobType)
	}
	if p.HourlyRate == nil {
		return errors.New("proposed_hourly_rate is required")
	}
	if *p.HourlyRate <= 0 {
		return errors.New("proposed_hourly_rate must be positive")
	}
	return nil
}

// RespondRequest is the body of
// POST /applications/{applicationId}/negotiations/{negotiationId}/response.
type RespondRequest struct {
	Response         models.NegotiationStatus `json:"response"`
	Message          string                   `json:"message"`
	CounterHourly    *float64                 `json:"counter_hourly_rate"`
	CounterSalaryMin *int                     `json:"counter_salary_min"`
	CounterSalaryMax *int                     `json:"counter_salary_max"`
}

func (r RespondRequest) Validate() error {
	switch r.Response {
	case models.NegotiationStatusAccepted, models.NegotiationStatusDeclined, models.NegotiationStatusCounterOffer:
		return nil
	}
	return errors.Errorf("response must be one of accepted/declined/counter_offer, got (%v)", string(r.Response))
}

// CounterProposal reshapes the counter fields for shape validation.
func (r RespondRequest) CounterProposal() Proposal {
	return Proposal{
		HourlyRate: r.CounterHourly,
		SalaryMin:  r.CounterSalaryMin,
		SalaryMax:  r.CounterSalaryMax,
	}
}

type RespondResponse struct {
	NegotiationID      string                   `json:"negotiation_id"`
	ApplicationID      string                   `json:"application_id"`
	JobID              string                   `json:"job_id"`
	Actor              models.ActorType         `json:"actor"`
	Response           models.NegotiationStatus `json:"response"`
	ApplicationStatus  models.ApplicationStatus `json:"application_status"`
	AcceptedHourlyRate *float64                 `json:"accepted_hourly_rate,omitempty"`
	NextSteps          string                   `json:"next_steps"`
}

type NegotiationView struct {
	ID            string                   `json:"id"`
	ApplicationID string                   `json:"application_id"`
	JobID         string                   `json:"job_id"`
	Status        models.NegotiationStatus `json:"status"`
	FromType      models.ActorType         `json:"from_type"`

	ProposedHourlyRate *float64 `json:"proposed_hourly_rate,omitempty"`
	ProposedSalaryMin  *int     `json:"proposed_salary_min,omitempty"`
	ProposedSalaryMax  *int     `json:"proposed_salary_max,omitempty"`

	ClinicCounterHourlyRate       *float64 `json:"clinic_counter_hourly_rate,omitempty"`
	ProfessionalCounterHourlyRate *float64 `json:"professional_counter_hourly_rate,omitempty"`
	CounterSalaryMin              *int     `json:"counter_salary_min,omitempty"`
	CounterSalaryMax              *int     `json:"counter_salary_max,omitempty"`

	ClinicResponse          string     `json:"clinic_response,omitempty"`
	ClinicMessage           string     `json:"clinic_message,omitempty"`
	ClinicRespondedAt       *time.Time `json:"clinic_responded_at,omitempty"`
	ProfessionalResponse    string     `json:"professional_response,omitempty"`
	ProfessionalMessage     string     `json:"professional_message,omitempty"`
	ProfessionalRespondedAt *time.Time `json:"professional_responded_at,omitempty"`

	AgreedHourlyRate *float64  `json:"agreed_hourly_rate,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func NegotiationConvert(rec dbmodels.JobNegotiation) NegotiationView {
	return NegotiationView{
		ID:                            rec.ID,
		ApplicationID:                 rec.ApplicationID,
		JobID:                         rec.JobID,
		Status:                        rec.Status,
		FromType:                      rec.FromType,
		ProposedHourlyRate:            rec.ProposedHourlyRate,
		ProposedSalaryMin:             rec.ProposedSalaryMin,
		ProposedSalaryMax:             rec.ProposedSalaryMax,
		ClinicCounterHourlyRate:       rec.ClinicCounterHourlyRate,
		ProfessionalCounterHourlyRate: rec.ProfessionalCounterHourlyRate,
		CounterSalaryMin:              rec.CounterSalaryMin,
		CounterSalaryMax:              rec.CounterSalaryMax,
		ClinicResponse:                rec.ClinicResponse,
		ClinicMessage:                 rec.ClinicMessage,
		ClinicRespondedAt:             rec.ClinicRespondedAt,
		ProfessionalResponse:          rec.ProfessionalResponse,
		ProfessionalMessage:           rec.ProfessionalMessage,
		ProfessionalRespondedAt:       rec.ProfessionalRespondedAt,
		AgreedHourlyRate:              rec.AgreedHourlyRate,
		CreatedAt:                     rec.CreatedAt,
	}
}
