package invitationhandler

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
	invitationstore "dental-staff-backend/lib/invitation/store"
	jobstore "dental-staff-backend/lib/job/store"
	negotiationstore "dental-staff-backend/lib/negotiation/store"
	"dental-staff-backend/lib/notify"
	"dental-staff-backend/models"
	invitationapimodels "dental-staff-backend/models/api/invitation"
	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Create(subjectSub string, groups access.Groups, data invitationapimodels.InvitationData) (id string, err error)
	Respond(professionalSub, invitationID string, data invitationapimodels.RespondRequest) (resp invitationapimodels.RespondResponse, err error)
	ListByJob(subjectSub string, groups access.Groups, jobID string) (list []invitationapimodels.InvitationView, err error)
	ListMine(professionalSub string) (list []invitationapimodels.InvitationView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       invitationstore.NewInstance(db.DB),
		jobStore:    jobstore.NewInstance(db.DB),
		clinicStore: clinicstore.NewInstance(db.DB),
		runTx:       gormTxRunner,
	}
}

// txStores is the store set bound to one transaction: an accepted or
// negotiated invitation moves the application, negotiation, job and
// invitation rows together.
type txStores struct {
	applications applicationstore.Provider
	negotiations negotiationstore.Provider
	jobs         jobstore.Provider
	invitations  invitationstore.Provider
}

type txRunner func(fn func(s txStores) error) error

func gormTxRunner(fn func(s txStores) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(txStores{
			applications: applicationstore.NewInstance(tx),
			negotiations: negotiationstore.NewInstance(tx),
			jobs:         jobstore.NewInstance(tx),
			invitations:  invitationstore.NewInstance(tx),
		})
	})
}

type impl struct {
	store       invitationstore.Provider
	jobStore    jobstore.Provider
	clinicStore clinicstore.Provider
	runTx       txRunner
}

func (i impl) Create(subjectSub string, groups access.Groups, data invitationapimodels.InvitationData) (id string, err error) {
	job, err := i.jobStore.GetByID(data.JobID)
	if err != nil {
		return "", err
	}
	if job == nil {
		return "", apperror.NotFound("job not found")
	}
	if !access.CanManageJob(subjectSub, groups, job, job.Clinic) {
		return "", apperror.Forbidden("no access to this job")
	}
	if job.Status.IsTerminal() {
		return "", apperror.Conflict("job is closed to new invitations")
	}
	id, err = i.store.Create(dbmodels.JobInvitation{
		JobID:               job.ID,
		ProfessionalUserSub: data.ProfessionalUserSub,
		ClinicID:            job.ClinicID,
		ClinicUserSub:       subjectSub,
		Status:              models.InvitationStatusPending,
		Message:             data.Message,
		OfferedHourlyRate:   data.OfferedHourlyRate,
		OfferedSalaryMin:    data.OfferedSalaryMin,
		OfferedSalaryMax:    data.OfferedSalaryMax,
	})
	if err != nil {
		if errors.Is(err, invitationstore.ErrDuplicate) {
			return "", apperror.Conflict("professional already invited to this job")
		}
		return "", err
	}
	i.getLogger(job.ID, subjectSub).
		WithField("invitation_id", id).
		WithField("professional_sub", data.ProfessionalUserSub).
		Info("invitation sent")
	return id, nil
}

// Respond handles the invited professional's answer. Accepting books the job
// directly, negotiating opens an application/negotiation pair, declining
// touches nothing but the invitation row itself.
func (i impl) Respond(professionalSub, invitationID string, data invitationapimodels.RespondRequest) (resp invitationapimodels.RespondResponse, err error) {
	invitation, err := i.store.GetByID(invitationID)
	if err != nil {
		return resp, err
	}
	if invitation == nil {
		return resp, apperror.NotFound("invitation not found")
	}
	if !access.IsProfessionalOwner(professionalSub, invitation.ProfessionalUserSub) {
		return resp, apperror.Forbidden("invitation belongs to another professional")
	}
	if invitation.Status.IsTerminal() {
		return resp, apperror.Newf(apperror.KindConflict, "invitation already %v", invitation.Status)
	}
	if !invitation.Status.CanTransition(data.Response) {
		return resp, apperror.Newf(apperror.KindConflict, "invitation in status %v cannot move to %v", invitation.Status, data.Response)
	}
	if invitation.JobID == "" || invitation.ClinicID == "" || invitation.ClinicUserSub == "" {
		return resp, apperror.New(apperror.KindInternal, "invitation record is missing its job or clinic reference")
	}
	job, err := i.jobStore.GetByID(invitation.JobID)
	if err != nil {
		return resp, err
	}
	if job == nil {
		return resp, apperror.NotFound("job behind the invitation no longer exists")
	}
	logger := i.getLogger(job.ID, professionalSub).WithField("invitation_id", invitationID)

	resp = invitationapimodels.RespondResponse{
		InvitationID: invitationID,
		JobID:        job.ID,
		Response:     data.Response,
	}
	now := time.Now()
	invitationUpd := map[string]interface{}{
		"status":           data.Response,
		"response_message": data.Message,
		"responded_at":     now,
	}

	switch data.Response {
	case models.InvitationStatusDeclined:
		if err = i.store.Update(invitationID, invitationUpd); err != nil {
			return resp, err
		}
		resp.NextSteps = "The clinic has been notified of your decision."

	case models.InvitationStatusAccepted:
		err = i.runTx(func(s txStores) error {
			applicationID, txErr := s.applications.Create(dbmodels.JobApplication{
				JobID:               job.ID,
				ProfessionalUserSub: professionalSub,
				ClinicID:            invitation.ClinicID,
				Status:              models.ApplicationStatusAccepted,
				Message:             data.Message,
				Availability:        data.AvailabilityNotes,
				FromInvitation:      true,
				AcceptedHourlyRate:  invitation.OfferedHourlyRate,
				AcceptedRate:        invitation.OfferedHourlyRate,
				AppliedAt:           now,
			})
			if txErr != nil {
				return txErr
			}
			resp.ApplicationID = applicationID
			if job.Status.CanTransition(models.JobStatusScheduled) {
				txErr = s.jobs.Update(job.ID, map[string]interface{}{
					"status":                    models.JobStatusScheduled,
					"accepted_professional_sub": professionalSub,
				})
				if txErr != nil {
					return errors.Wrap(txErr, "failed to book the job")
				}
			}
			return s.invitations.Update(invitationID, invitationUpd)
		})
		if err != nil {
			if errors.Is(err, applicationstore.ErrDuplicate) {
				return resp, apperror.Conflict("you have already applied to this job")
			}
			return resp, err
		}
		resp.NextSteps = "You are booked. The clinic will reach out with scheduling details."
		go i.notifyClinic(invitation.ClinicID, job.Title, professionalSub, "accepted")

	case models.InvitationStatusNegotiating:
		if err = data.Proposal().ValidateFor(job.JobType); err != nil {
			return resp, apperror.Wrap(apperror.KindBadRequest, err, "invalid counter proposal")
		}
		err = i.runTx(func(s txStores) error {
			applicationID, txErr := s.applications.Create(dbmodels.JobApplication{
				JobID:               job.ID,
				ProfessionalUserSub: professionalSub,
				ClinicID:            invitation.ClinicID,
				Status:              models.ApplicationStatusNegotiating,
				Message:             data.CounterProposalMessage,
				Availability:        data.AvailabilityNotes,
				ProposedRate:        data.ProposedHourlyRate,
				FromInvitation:      true,
				AppliedAt:           now,
			})
			if txErr != nil {
				return txErr
			}
			resp.ApplicationID = applicationID
			_, txErr = s.negotiations.Create(dbmodels.JobNegotiation{
				ApplicationID:      applicationID,
				JobID:              job.ID,
				Status:             models.NegotiationStatusPending,
				FromType:           models.ActorProfessional,
				ProposedHourlyRate: data.ProposedHourlyRate,
				ProposedSalaryMin:  data.ProposedSalaryMin,
				ProposedSalaryMax:  data.ProposedSalaryMax,
			})
			if txErr != nil {
				return errors.Wrap(txErr, "failed to open negotiation")
			}
			return s.invitations.Update(invitationID, invitationUpd)
		})
		if err != nil {
			if errors.Is(err, applicationstore.ErrDuplicate) {
				return resp, apperror.Conflict("you have already applied to this job")
			}
			return resp, err
		}
		resp.NextSteps = "Your counter proposal was sent. The clinic will respond through the negotiation."
		go i.notifyClinic(invitation.ClinicID, job.Title, professionalSub, "proposed new terms")

	default:
		return resp, apperror.BadRequest("unsupported response")
	}

	logger.WithField("response", data.Response).Info("invitation response recorded")
	return resp, nil
}

func (i impl) ListByJob(subjectSub string, groups access.Groups, jobID string) (list []invitationapimodels.InvitationView, err error) {
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NotFound("job not found")
	}
	if !access.CanManageJob(subjectSub, groups, job, job.Clinic) {
		return nil, apperror.Forbidden("no access to this job")
	}
	recList, err := i.store.ListByJob(jobID)
	if err != nil {
		return nil, err
	}
	result := make([]invitationapimodels.InvitationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, invitationapimodels.InvitationConvert(rec))
	}
	return result, nil
}

func (i impl) ListMine(professionalSub string) (list []invitationapimodels.InvitationView, err error) {
	recList, err := i.store.ListByProfessional(professionalSub)
	if err != nil {
		return nil, err
	}
	result := make([]invitationapimodels.InvitationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, invitationapimodels.InvitationConvert(rec))
	}
	return result, nil
}

func (i impl) notifyClinic(clinicID, jobTitle, professionalSub, action string) {
	clinic, err := i.clinicStore.GetByID(clinicID)
	if err != nil || clinic == nil {
		log.WithField("clinic_id", clinicID).WithError(err).Error("failed to load clinic for notification")
		return
	}
	notify.Instance.InvitationResponded(clinic.Email, jobTitle, professionalSub, action)
}

func (i impl) getLogger(jobID, userID string) *log.Entry {
	logger := log.WithField("job_id", jobID)
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}
