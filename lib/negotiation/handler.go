package negotiationhandler

import (
	"time"

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
	negotiationapimodels "dental-staff-backend/models/api/negotiation"
	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Respond(subjectSub string, groups access.Groups, applicationID, negotiationID string, data negotiationapimodels.RespondRequest) (resp negotiationapimodels.RespondResponse, err error)
	ListByApplication(subjectSub string, groups access.Groups, applicationID string) (list []negotiationapimodels.NegotiationView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            negotiationstore.NewInstance(db.DB),
		applicationStore: applicationstore.NewInstance(db.DB),
		jobStore:         jobstore.NewInstance(db.DB),
		clinicStore:      clinicstore.NewInstance(db.DB),
		runTx:            gormTxRunner,
	}
}

// txStores is the store set bound to one transaction: a response moves the
// negotiation, application and job rows together.
type txStores struct {
	negotiations negotiationstore.Provider
	applications applicationstore.Provider
	jobs         jobstore.Provider
}

type txRunner func(fn func(s txStores) error) error

func gormTxRunner(fn func(s txStores) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(txStores{
			negotiations: negotiationstore.NewInstance(tx),
			applications: applicationstore.NewInstance(tx),
			jobs:         jobstore.NewInstance(tx),
		})
	})
}

type impl struct {
	store            negotiationstore.Provider
	applicationStore applicationstore.Provider
	jobStore         jobstore.Provider
	clinicStore      clinicstore.Provider
	runTx            txRunner
}

// Respond records one side's answer to the open negotiation. The negotiation,
// application and job rows move together in a single transaction so a
// half-applied response can never be observed.
func (i impl) Respond(subjectSub string, groups access.Groups, applicationID, negotiationID string, data negotiationapimodels.RespondRequest) (resp negotiationapimodels.RespondResponse, err error) {
	negotiation, err := i.store.GetByID(applicationID, negotiationID)
	if err != nil {
		return resp, err
	}
	if negotiation == nil {
		return resp, apperror.NotFound("negotiation not found")
	}
	job, err := i.jobStore.GetByID(negotiation.JobID)
	if err != nil {
		return resp, err
	}
	if job == nil {
		return resp, apperror.NotFound("job behind the negotiation no longer exists")
	}
	application, err := i.applicationStore.GetByID(negotiation.ApplicationID)
	if err != nil {
		return resp, err
	}
	if application == nil {
		return resp, apperror.NotFound("application behind the negotiation no longer exists")
	}

	actor, ok := DeriveActor(subjectSub, groups, job, application)
	if !ok {
		return resp, apperror.Forbidden("you are not a party to this negotiation")
	}
	logger := log.
		WithField("job_id", job.ID).
		WithField("application_id", applicationID).
		WithField("negotiation_id", negotiationID).
		WithField("actor", actor)

	if negotiation.Status.IsTerminal() {
		// a second decline of an already declined negotiation is harmless
		if negotiation.Status == models.NegotiationStatusDeclined && data.Response == models.NegotiationStatusDeclined {
			return negotiationapimodels.RespondResponse{
				NegotiationID:     negotiationID,
				ApplicationID:     applicationID,
				JobID:             job.ID,
				Actor:             actor,
				Response:          data.Response,
				ApplicationStatus: application.Status,
				NextSteps:         "This negotiation was already declined.",
			}, nil
		}
		return resp, apperror.Newf(apperror.KindConflict, "negotiation already %v", negotiation.Status)
	}
	if !negotiation.Status.CanTransition(data.Response) {
		return resp, apperror.Newf(apperror.KindConflict, "negotiation in status %v cannot move to %v", negotiation.Status, data.Response)
	}

	var agreedRate *float64
	if data.Response == models.NegotiationStatusAccepted && !job.JobType.IsSalaried() {
		agreedRate, err = ResolveAgreedRate(actor, negotiation, application)
		if err != nil {
			return resp, apperror.Wrap(apperror.KindBadRequest, err, "cannot accept")
		}
	}
	if data.Response == models.NegotiationStatusCounterOffer {
		if err = data.CounterProposal().ValidateFor(job.JobType); err != nil {
			return resp, apperror.Wrap(apperror.KindBadRequest, err, "invalid counter proposal")
		}
	}

	applicationStatus := ApplicationStatusFor(data.Response)
	if application.Status != applicationStatus && !application.Status.CanTransition(applicationStatus) {
		return resp, apperror.Newf(apperror.KindConflict, "application in status %v cannot move to %v", application.Status, applicationStatus)
	}

	now := time.Now()
	negotiationUpd := map[string]interface{}{
		"status": data.Response,
	}
	switch actor {
	case models.ActorClinic:
		negotiationUpd["clinic_response"] = string(data.Response)
		negotiationUpd["clinic_message"] = data.Message
		negotiationUpd["clinic_responded_at"] = now
		if data.Response == models.NegotiationStatusCounterOffer {
			if data.CounterHourly != nil {
				negotiationUpd["clinic_counter_hourly_rate"] = data.CounterHourly
			}
		}
	case models.ActorProfessional:
		negotiationUpd["professional_response"] = string(data.Response)
		negotiationUpd["professional_message"] = data.Message
		negotiationUpd["professional_responded_at"] = now
		if data.Response == models.NegotiationStatusCounterOffer {
			if data.CounterHourly != nil {
				negotiationUpd["professional_counter_hourly_rate"] = data.CounterHourly
			}
		}
	}
	if data.Response == models.NegotiationStatusCounterOffer {
		if data.CounterSalaryMin != nil {
			negotiationUpd["counter_salary_min"] = data.CounterSalaryMin
		}
		if data.CounterSalaryMax != nil {
			negotiationUpd["counter_salary_max"] = data.CounterSalaryMax
		}
	}
	if agreedRate != nil {
		negotiationUpd["agreed_hourly_rate"] = agreedRate
	}

	applicationUpd := map[string]interface{}{
		"status": applicationStatus,
	}
	if agreedRate != nil {
		applicationUpd["accepted_hourly_rate"] = agreedRate
		applicationUpd["accepted_rate"] = agreedRate
	}

	err = i.runTx(func(s txStores) error {
		if txErr := s.negotiations.Update(negotiationID, negotiationUpd); txErr != nil {
			return txErr
		}
		if application.Status != applicationStatus || agreedRate != nil {
			txErr := s.applications.UpdateByJobAndProfessional(job.ID, application.ProfessionalUserSub, applicationUpd)
			if txErr != nil {
				return txErr
			}
		}
		if jobUpd := jobUpdateFor(data.Response, job, application.ProfessionalUserSub); len(jobUpd) != 0 {
			if txErr := s.jobs.Update(job.ID, jobUpd); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return resp, err
	}

	resp = negotiationapimodels.RespondResponse{
		NegotiationID:      negotiationID,
		ApplicationID:      applicationID,
		JobID:              job.ID,
		Actor:              actor,
		Response:           data.Response,
		ApplicationStatus:  applicationStatus,
		AcceptedHourlyRate: agreedRate,
		NextSteps:          nextStepsFor(actor, data.Response),
	}
	logger.WithField("response", data.Response).Info("negotiation response recorded")
	go i.notifyCounterparty(actor, job, application, data.Response)
	return resp, nil
}

func (i impl) ListByApplication(subjectSub string, groups access.Groups, applicationID string) (list []negotiationapimodels.NegotiationView, err error) {
	application, err := i.applicationStore.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, apperror.NotFound("application not found")
	}
	if !access.IsProfessionalOwner(subjectSub, application.ProfessionalUserSub) {
		job, jobErr := i.jobStore.GetByID(application.JobID)
		if jobErr != nil {
			return nil, jobErr
		}
		if job == nil || !access.CanManageJob(subjectSub, groups, job, job.Clinic) {
			return nil, apperror.Forbidden("no access to this negotiation history")
		}
	}
	recList, err := i.store.ListByApplication(applicationID)
	if err != nil {
		return nil, err
	}
	result := make([]negotiationapimodels.NegotiationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, negotiationapimodels.NegotiationConvert(rec))
	}
	return result, nil
}

// DeriveActor decides which side of the negotiation the subject speaks for.
// The posting owner or anyone managing the clinic acts for the clinic; only
// the applying professional acts for the professional side.
func DeriveActor(subjectSub string, groups access.Groups, job *dbmodels.JobPosting, application *dbmodels.JobApplication) (models.ActorType, bool) {
	if access.IsProfessionalOwner(subjectSub, application.ProfessionalUserSub) {
		return models.ActorProfessional, true
	}
	if access.CanManageJob(subjectSub, groups, job, job.Clinic) {
		return models.ActorClinic, true
	}
	return "", false
}

// ApplicationStatusFor maps a negotiation response onto the parent
// application's lifecycle.
func ApplicationStatusFor(response models.NegotiationStatus) models.ApplicationStatus {
	switch response {
	case models.NegotiationStatusAccepted:
		return models.ApplicationStatusScheduled
	case models.NegotiationStatusDeclined:
		return models.ApplicationStatusDeclined
	default:
		return models.ApplicationStatusNegotiating
	}
}

// ResolveAgreedRate picks the hourly rate an acceptance settles on: the
// accepting side takes the other side's most recent number. The professional
// accepts the clinic's counter; the clinic accepts the professional's counter
// or, failing that, the originally proposed rate.
func ResolveAgreedRate(actor models.ActorType, negotiation *dbmodels.JobNegotiation, application *dbmodels.JobApplication) (*float64, error) {
	switch actor {
	case models.ActorProfessional:
		if negotiation.ClinicCounterHourlyRate != nil {
			return negotiation.ClinicCounterHourlyRate, nil
		}
		return nil, apperror.BadRequest("the clinic has not countered with a rate yet")
	case models.ActorClinic:
		if negotiation.ProfessionalCounterHourlyRate != nil {
			return negotiation.ProfessionalCounterHourlyRate, nil
		}
		if negotiation.ProposedHourlyRate != nil {
			return negotiation.ProposedHourlyRate, nil
		}
		if application.ProposedRate != nil {
			return application.ProposedRate, nil
		}
		return nil, apperror.BadRequest("the professional has not proposed a rate yet")
	}
	return nil, apperror.BadRequest("unknown negotiation actor")
}

// jobUpdateFor moves the posting when a negotiation resolves: an acceptance
// books it, a decline releases an action_needed posting back to active.
func jobUpdateFor(response models.NegotiationStatus, job *dbmodels.JobPosting, professionalSub string) map[string]interface{} {
	switch response {
	case models.NegotiationStatusAccepted:
		if job.Status.CanTransition(models.JobStatusScheduled) {
			return map[string]interface{}{
				"status":                    models.JobStatusScheduled,
				"accepted_professional_sub": professionalSub,
			}
		}
	case models.NegotiationStatusDeclined:
		if job.Status == models.JobStatusActionNeeded {
			return map[string]interface{}{
				"status": models.JobStatusActive,
			}
		}
	}
	return nil
}

func nextStepsFor(actor models.ActorType, response models.NegotiationStatus) string {
	switch response {
	case models.NegotiationStatusAccepted:
		return "Terms agreed. The booking is confirmed and both parties have been notified."
	case models.NegotiationStatusDeclined:
		return "The negotiation is closed. The other party has been notified."
	default:
		if actor == models.ActorClinic {
			return "Your counter offer was sent to the professional."
		}
		return "Your counter offer was sent to the clinic."
	}
}

func (i impl) notifyCounterparty(actor models.ActorType, job *dbmodels.JobPosting, application *dbmodels.JobApplication, response models.NegotiationStatus) {
	if actor != models.ActorProfessional {
		return
	}
	clinic, err := i.clinicStore.GetByID(application.ClinicID)
	if err != nil || clinic == nil {
		log.WithField("clinic_id", application.ClinicID).WithError(err).Error("failed to load clinic for notification")
		return
	}
	notify.Instance.NegotiationResponded(clinic.Email, job.Title, application.ProfessionalUserSub, string(response))
}
