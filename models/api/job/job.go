package jobapimodels

import (
	"time"

	"github.com/pkg/errors"

	"dental-staff-backend/models"
	apimodels "dental-staff-backend/models/api"
	dbmodels "dental-staff-backend/models/db"
)

type JobData struct {
	ClinicID    string         `json:"clinic_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	JobType     models.JobType `json:"job_type"`
	HourlyRate  float64        `json:"hourly_rate"`
	SalaryMin   int            `json:"salary_min"`
	SalaryMax   int            `json:"salary_max"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	HoursPerDay int            `json:"hours_per_day"`
}

func (j JobData) Validate() error {
	if j.ClinicID == "" {
		return errors.New("clinic id is required")
	}
	if j.Title == "" {
		return errors.New("job title is required")
	}
	if err := j.JobType.Validate(); err != nil {
		return err
	}
	if j.JobType.IsSalaried() {
		if j.SalaryMin <= 0 || j.SalaryMax <= 0 {
			return errors.New("permanent jobs require a salary range")
		}
		if j.SalaryMin >= j.SalaryMax {
			return errors.New("salary_min must be below salary_max")
		}
		return nil
	}
	if j.HourlyRate <= 0 {
		return errors.New("hourly rate is required for non-permanent jobs")
	}
	return nil
}

type JobView struct {
	JobData
	ID                      string           `json:"id"`
	Status                  models.JobStatus `json:"status"`
	ClinicUserSub           string           `json:"clinic_user_sub"`
	Street                  string           `json:"street"`
	City                    string           `json:"city"`
	State                   string           `json:"state"`
	ZipCode                 string           `json:"zip_code"`
	AcceptedProfessionalSub string           `json:"accepted_professional_sub,omitempty"`
	CreatedAt               time.Time        `json:"created_at"`
}

func JobConvert(rec dbmodels.JobPosting) JobView {
	return JobView{
		JobData: JobData{
			ClinicID:    rec.ClinicID,
			Title:       rec.Title,
			Description: rec.Description,
			JobType:     rec.JobType,
			HourlyRate:  rec.HourlyRate,
			SalaryMin:   rec.SalaryMin,
			SalaryMax:   rec.SalaryMax,
			StartDate:   rec.StartDate,
			EndDate:     rec.EndDate,
			HoursPerDay: rec.HoursPerDay,
		},
		ID:                      rec.ID,
		Status:                  rec.Status,
		ClinicUserSub:           rec.ClinicUserSub,
		Street:                  rec.Street,
		City:                    rec.City,
		State:                   rec.State,
		ZipCode:                 rec.ZipCode,
		AcceptedProfessionalSub: rec.AcceptedProfessionalSub,
		CreatedAt:               rec.CreatedAt,
	}
}

type JobFilter struct {
	dbmodels.JobFilter
	apimodels.Pagination
}

type StatusChangeRequest struct {
	Status models.JobStatus `json:"status"`
}

func (r StatusChangeRequest) Validate() error {
	_, err := models.ParseJobStatus(string(r.Status))
	return err
}
