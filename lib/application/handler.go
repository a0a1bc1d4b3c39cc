package applicationhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dental-staff-backend/db"
	"dental-staff-backend/lib/access"
	"dental-staff-backend/lib/apperror"
	applicationstore "dental-staff-backend/lib/application/store"
	clinicstore "dental-staff-backend/lib/clinic/store"
	jobstore "dental-staff-backend/lib/job/store"
	negotiationstore "dental-staff-backend/lib/negotiation/store"
	"dental-staff-backend/lib/notify"
	"dental-staff-backend/models"
	applicationapimodels "dental-staff-backend/models/api/application"
	clinicapimodels "dental-staff-backend/models/api/clinic"
	jobapimodels "dental-staff-backend/models/api/job"
	negotiationapimodels "dental-staff-backend/models/api/negotiation"
	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Apply(professionalSub string, data applicationapimodels.ApplyRequest) (resp applicationapimodels.ApplyResponse, err error)
	GetByID(subjectSub string, groups access.Groups, applicationID string) (item applicationapimodels.ApplicationView, err error)
	ListMine(professionalSub string) (list []applicationapimodels.ApplicationView, err error)
	ListForJob(subjectSub string, groups access.Groups, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error)
	Withdraw(professionalSub, applicationID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       applicationstore.NewInstance(db.DB),
		jobStore:    jobstore.NewInstance(db.DB),
		clinicStore: clinicstore.NewInstance(db.DB),
		runTx:       gormTxRunner,
	}
}

// txStores is the store set bound to one transaction: the application and
// its opening negotiation are created together or not at all.
type txStores struct {
	applications applicationstore.Provider
	negotiations negotiationstore.Provider
}

type txRunner func(fn func(s txStores) error) error

func gormTxRunner(fn func(s txStores) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(txStores{
			applications: applicationstore.NewInstance(tx),
			negotiations: negotiationstore.NewInstance(tx),
		})
	})
}

type impl struct {
	store       applicationstore.Provider
	jobStore    jobstore.Provider
	clinicStore clinicstore.Provider
	runTx       txRunner
}

// Apply creates the application and, when a rate is proposed, the opening
// negotiation round in the same transaction. Duplicate submissions are
// rejected by the conditional insert, not by a pre-check read.
func (i impl) Apply(professionalSub string, data applicationapimodels.ApplyRequest) (resp applicationapimodels.ApplyResponse, err error) {
	logger := i.getLogger(data.JobID, professionalSub)
	job, err := i.jobStore.GetByID(data.JobID)
	if err != nil {
		return resp, err
	}
	if job == nil {
		return resp, apperror.NotFound("job not found")
	}
	if !job.Status.AcceptsApplications() {
		return resp, apperror.Conflict("job is not accepting applications")
	}
	if job.ClinicID == "" {
		return resp, apperror.BadRequest("job posting carries no clinic reference")
	}

	status := models.ApplicationStatusPending
	if data.ProposedRate != nil {
		proposal := negotiationapimodels.Proposal{HourlyRate: data.ProposedRate}
		if err = proposal.ValidateFor(job.JobType); err != nil {
			return resp, apperror.Wrap(apperror.KindBadRequest, err, "invalid rate proposal")
		}
		status = models.ApplicationStatusNegotiating
	}

	applicationID := ""
	err = i.runTx(func(s txStores) error {
		rec := dbmodels.JobApplication{
			JobID:               job.ID,
			ProfessionalUserSub: professionalSub,
			ClinicID:            job.ClinicID,
			Status:              status,
			Message:             data.Message,
			Availability:        data.Availability,
			StartDate:           data.StartDate,
			Notes:               data.Notes,
			ProposedRate:        data.ProposedRate,
			AppliedAt:           time.Now(),
		}
		applicationID, err = s.applications.Create(rec)
		if err != nil {
			return err
		}
		if status != models.ApplicationStatusNegotiating {
			return nil
		}
		negotiation := dbmodels.JobNegotiation{
			ApplicationID:      applicationID,
			JobID:              job.ID,
			Status:             models.NegotiationStatusPending,
			FromType:           models.ActorProfessional,
			ProposedHourlyRate: data.ProposedRate,
		}
		_, err = s.negotiations.Create(negotiation)
		if err != nil {
			return errors.Wrap(err, "failed to open negotiation")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, applicationstore.ErrDuplicate) {
			return resp, apperror.Conflict("duplicate application")
		}
		return resp, err
	}

	resp = applicationapimodels.ApplyResponse{
		ApplicationID:     applicationID,
		ApplicationStatus: status,
		Job:               jobapimodels.JobConvert(*job),
	}
	// display enrichment is best effort, a failure here never fails the apply
	clinic, clinicErr := i.clinicStore.GetByID(job.ClinicID)
	if clinicErr != nil {
		logger.WithError(clinicErr).Error("failed to enrich application with clinic profile")
	} else if clinic != nil {
		view := clinicapimodels.ClinicConvert(*clinic)
		resp.Clinic = &view
		go notify.Instance.ApplicationReceived(clinic.Email, job.Title, professionalSub)
	}
	logger.
		WithField("application_id", applicationID).
		WithField("application_status", status).
		Info("application submitted")
	return resp, nil
}

func (i impl) GetByID(subjectSub string, groups access.Groups, applicationID string) (applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if rec == nil {
		return applicationapimodels.ApplicationView{}, apperror.NotFound("application not found")
	}
	if !access.IsProfessionalOwner(subjectSub, rec.ProfessionalUserSub) {
		if err = i.checkClinicSide(subjectSub, groups, rec); err != nil {
			return applicationapimodels.ApplicationView{}, err
		}
	}
	return applicationapimodels.ApplicationConvert(*rec), nil
}

func (i impl) ListMine(professionalSub string) (list []applicationapimodels.ApplicationView, err error) {
	recList, err := i.store.ListByProfessional(professionalSub)
	if err != nil {
		return nil, err
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, applicationapimodels.ApplicationConvert(rec))
	}
	return result, nil
}

func (i impl) ListForJob(subjectSub string, groups access.Groups, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error) {
	if filter.JobID == "" {
		return nil, 0, apperror.BadRequest("job id is required")
	}
	job, err := i.jobStore.GetByID(filter.JobID)
	if err != nil {
		return nil, 0, err
	}
	if job == nil {
		return nil, 0, apperror.NotFound("job not found")
	}
	if !access.CanManageJob(subjectSub, groups, job, job.Clinic) {
		return nil, 0, apperror.Forbidden("no access to this job")
	}
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, applicationapimodels.ApplicationConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Withdraw(professionalSub, applicationID string) error {
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperror.NotFound("application not found")
	}
	if !access.IsProfessionalOwner(professionalSub, rec.ProfessionalUserSub) {
		return apperror.Forbidden("only the applying professional may withdraw")
	}
	if rec.Status == models.ApplicationStatusWithdrawn {
		return nil
	}
	if !rec.Status.CanTransition(models.ApplicationStatusWithdrawn) {
		return apperror.Newf(apperror.KindConflict, "application in status %v cannot be withdrawn", rec.Status)
	}
	err = i.store.UpdateByJobAndProfessional(rec.JobID, rec.ProfessionalUserSub, map[string]interface{}{
		"status": models.ApplicationStatusWithdrawn,
	})
	if err != nil {
		return err
	}
	i.getLogger(rec.JobID, professionalSub).
		WithField("application_id", applicationID).
		Info("application withdrawn")
	return nil
}

func (i impl) checkClinicSide(subjectSub string, groups access.Groups, rec *dbmodels.JobApplication) error {
	job, err := i.jobStore.GetByID(rec.JobID)
	if err != nil {
		return err
	}
	if job == nil || !access.CanManageJob(subjectSub, groups, job, job.Clinic) {
		return apperror.Forbidden("no access to this application")
	}
	return nil
}

func (i impl) getLogger(jobID, userID string) *log.Entry {
	logger := log.WithField("job_id", jobID)
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}
