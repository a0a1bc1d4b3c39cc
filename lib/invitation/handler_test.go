package invitationhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dental-staff-backend/lib/apperror"
	applicationstore "dental-staff-backend/lib/application/store"
	clinicstore "dental-staff-backend/lib/clinic/store"
	invitationstore "dental-staff-backend/lib/invitation/store"
	jobstore "dental-staff-backend/lib/job/store"
	negotiationstore "dental-staff-backend/lib/negotiation/store"
	"dental-staff-backend/models"
	invitationapimodels "dental-staff-backend/models/api/invitation"
	dbmodels "dental-staff-backend/models/db"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

type fakeInvitationStore struct {
	invitationstore.Provider
	invitation *dbmodels.JobInvitation
	updates    []map[string]interface{}
}

func (f *fakeInvitationStore) GetByID(id string) (*dbmodels.JobInvitation, error) {
	return f.invitation, nil
}

func (f *fakeInvitationStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

type fakeApplicationStore struct {
	applicationstore.Provider
	created   []dbmodels.JobApplication
	createErr error
}

func (f *fakeApplicationStore) Create(rec dbmodels.JobApplication) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, rec)
	return "application-1", nil
}

type fakeNegotiationStore struct {
	negotiationstore.Provider
	created []dbmodels.JobNegotiation
}

func (f *fakeNegotiationStore) Create(rec dbmodels.JobNegotiation) (string, error) {
	f.created = append(f.created, rec)
	return "negotiation-1", nil
}

type fakeJobStore struct {
	jobstore.Provider
	job     *dbmodels.JobPosting
	updates []map[string]interface{}
}

func (f *fakeJobStore) GetByID(id string) (*dbmodels.JobPosting, error) {
	return f.job, nil
}

func (f *fakeJobStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

type fakeClinicStore struct {
	clinicstore.Provider
}

func (f *fakeClinicStore) GetByID(id string) (*dbmodels.Clinic, error) {
	return nil, nil
}

type respondFixture struct {
	handler      impl
	invitations  *fakeInvitationStore
	applications *fakeApplicationStore
	negotiations *fakeNegotiationStore
	jobs         *fakeJobStore
}

func newRespondFixture(invitation *dbmodels.JobInvitation, job *dbmodels.JobPosting) respondFixture {
	f := respondFixture{
		invitations:  &fakeInvitationStore{invitation: invitation},
		applications: &fakeApplicationStore{},
		negotiations: &fakeNegotiationStore{},
		jobs:         &fakeJobStore{job: job},
	}
	f.handler = impl{
		store:       f.invitations,
		jobStore:    f.jobs,
		clinicStore: &fakeClinicStore{},
		runTx: func(fn func(s txStores) error) error {
			return fn(txStores{
				applications: f.applications,
				negotiations: f.negotiations,
				jobs:         f.jobs,
				invitations:  f.invitations,
			})
		},
	}
	return f
}

func pendingInvitation() *dbmodels.JobInvitation {
	return &dbmodels.JobInvitation{
		BaseModel:           dbmodels.BaseModel{ID: "invitation-1"},
		JobID:               "job-1",
		ClinicID:            "clinic-1",
		ClinicUserSub:       "owner-1",
		ProfessionalUserSub: "pro-1",
		Status:              models.InvitationStatusPending,
		OfferedHourlyRate:   floatPtr(80),
	}
}

func activeJob(jobType models.JobType) *dbmodels.JobPosting {
	return &dbmodels.JobPosting{
		BaseModel:     dbmodels.BaseModel{ID: "job-1"},
		ClinicID:      "clinic-1",
		ClinicUserSub: "owner-1",
		Status:        models.JobStatusActive,
		JobType:       jobType,
	}
}

func TestRespond(t *testing.T) {
	t.Run(`terminal invitation conflicts and stays unchanged`, func(t *testing.T) {
		invitation := pendingInvitation()
		invitation.Status = models.InvitationStatusAccepted
		f := newRespondFixture(invitation, activeJob(models.JobTypeTemporary))

		_, err := f.handler.Respond("pro-1", "invitation-1", invitationapimodels.RespondRequest{
			Response: models.InvitationStatusDeclined,
		})
		require.Error(t, err)
		require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		require.Empty(t, f.invitations.updates)
		require.Empty(t, f.applications.created)
	})

	t.Run(`foreign invitation is forbidden`, func(t *testing.T) {
		f := newRespondFixture(pendingInvitation(), activeJob(models.JobTypeTemporary))

		_, err := f.handler.Respond("someone-else", "invitation-1", invitationapimodels.RespondRequest{
			Response: models.InvitationStatusAccepted,
		})
		require.Error(t, err)
		require.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run(`decline touches only the invitation row`, func(t *testing.T) {
		f := newRespondFixture(pendingInvitation(), activeJob(models.JobTypeTemporary))

		resp, err := f.handler.Respond("pro-1", "invitation-1", invitationapimodels.RespondRequest{
			Response: models.InvitationStatusDeclined,
			Message:  "not available",
		})
		require.NoError(t, err)
		require.Empty(t, resp.ApplicationID)
		require.Len(t, f.invitations.updates, 1)
		require.Equal(t, models.InvitationStatusDeclined, f.invitations.updates[0]["status"])
		require.Empty(t, f.applications.created)
		require.Empty(t, f.jobs.updates)
	})

	t.Run(`accept books the job at the offered rate`, func(t *testing.T) {
		f := newRespondFixture(pendingInvitation(), activeJob(models.JobTypeTemporary))

		resp, err := f.handler.Respond("pro-1", "invitation-1", invitationapimodels.RespondRequest{
			Response: models.InvitationStatusAccepted,
		})
		require.NoError(t, err)
		require.Equal(t, "application-1", resp.ApplicationID)
		require.Len(t, f.applications.created, 1)
		created := f.applications.created[0]
		require.Equal(t, models.ApplicationStatusAccepted, created.Status)
		require.True(t, created.FromInvitation)
		require.Equal(t, 80.0, *created.AcceptedHourlyRate)
		require.Equal(t, 80.0, *created.AcceptedRate)
		require.Len(t, f.jobs.updates, 1)
		require.Equal(t, models.JobStatusScheduled, f.jobs.updates[0]["status"])
		require.Equal(t, "pro-1", f.jobs.updates[0]["accepted_professional_sub"])
		require.Len(t, f.invitations.updates, 1)
		require.Equal(t, models.InvitationStatusAccepted, f.invitations.updates[0]["status"])
	})

	t.Run(`accept conflicts when the professional already applied`, func(t *testing.T) {
		f := newRespondFixture(pendingInvitation(), activeJob(models.JobTypeTemporary))
		f.applications.createErr = applicationstore.ErrDuplicate

		_, err := f.handler.Respond("pro-1", "invitation-1", invitationapimodels.RespondRequest{
			Response: models.InvitationStatusAccepted,
		})
		require.Error(t, err)
		require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run(`negotiating a permanent job opens a salary negotiation`, func(t *testing.T) {
		invitation := pendingInvitation()
		invitation.OfferedHourlyRate = nil
		f := newRespondFixture(invitation, activeJob(models.JobTypePermanent))

		resp, err := f.handler.Respond("pro-1", "invitation-1", invitationapimodels.RespondRequest{
			Response:          models.InvitationStatusNegotiating,
			ProposedSalaryMin: intPtr(80000),
			ProposedSalaryMax: intPtr(95000),
		})
		require.NoError(t, err)
		require.Equal(t, "application-1", resp.ApplicationID)
		require.Len(t, f.applications.created, 1)
		require.Equal(t, models.ApplicationStatusNegotiating, f.applications.created[0].Status)
		require.Len(t, f.negotiations.created, 1)
		negotiation := f.negotiations.created[0]
		require.Equal(t, models.NegotiationStatusPending, negotiation.Status)
		require.Equal(t, models.ActorProfessional, negotiation.FromType)
		require.Equal(t, 80000, *negotiation.ProposedSalaryMin)
		require.Equal(t, 95000, *negotiation.ProposedSalaryMax)
		require.Nil(t, negotiation.ProposedHourlyRate)
		require.Len(t, f.invitations.updates, 1)
		require.Equal(t, models.InvitationStatusNegotiating, f.invitations.updates[0]["status"])
	})

	t.Run(`hourly counter against a permanent job is rejected before any write`, func(t *testing.T) {
		f := newRespondFixture(pendingInvitation(), activeJob(models.JobTypePermanent))

		_, err := f.handler.Respond("pro-1", "invitation-1", invitationapimodels.RespondRequest{
			Response:           models.InvitationStatusNegotiating,
			ProposedHourlyRate: floatPtr(60),
		})
		require.Error(t, err)
		require.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
		require.Empty(t, f.applications.created)
		require.Empty(t, f.invitations.updates)
	})
}
