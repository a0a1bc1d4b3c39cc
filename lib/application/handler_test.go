package applicationhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dental-staff-backend/lib/apperror"
	applicationstore "dental-staff-backend/lib/application/store"
	clinicstore "dental-staff-backend/lib/clinic/store"
	jobstore "dental-staff-backend/lib/job/store"
	negotiationstore "dental-staff-backend/lib/negotiation/store"
	"dental-staff-backend/models"
	applicationapimodels "dental-staff-backend/models/api/application"
	dbmodels "dental-staff-backend/models/db"
)

func floatPtr(v float64) *float64 { return &v }

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
	job *dbmodels.JobPosting
}

func (f *fakeJobStore) GetByID(id string) (*dbmodels.JobPosting, error) {
	return f.job, nil
}

type fakeClinicStore struct {
	clinicstore.Provider
}

func (f *fakeClinicStore) GetByID(id string) (*dbmodels.Clinic, error) {
	return nil, nil
}

func newTestImpl(job *dbmodels.JobPosting, applications *fakeApplicationStore, negotiations *fakeNegotiationStore) impl {
	return impl{
		store:       applications,
		jobStore:    &fakeJobStore{job: job},
		clinicStore: &fakeClinicStore{},
		runTx: func(fn func(s txStores) error) error {
			return fn(txStores{applications: applications, negotiations: negotiations})
		},
	}
}

func activeJob(jobType models.JobType) *dbmodels.JobPosting {
	return &dbmodels.JobPosting{
		BaseModel: dbmodels.BaseModel{ID: "job-1"},
		ClinicID:  "clinic-1",
		Status:    models.JobStatusActive,
		JobType:   jobType,
	}
}

func TestApply(t *testing.T) {
	t.Run(`plain apply stays pending and opens no negotiation`, func(t *testing.T) {
		applications := &fakeApplicationStore{}
		negotiations := &fakeNegotiationStore{}
		h := newTestImpl(activeJob(models.JobTypeTemporary), applications, negotiations)

		resp, err := h.Apply("pro-1", applicationapimodels.ApplyRequest{JobID: "job-1", Message: "available weekdays"})
		require.NoError(t, err)
		require.Equal(t, "application-1", resp.ApplicationID)
		require.Equal(t, models.ApplicationStatusPending, resp.ApplicationStatus)
		require.Len(t, applications.created, 1)
		require.Equal(t, models.ApplicationStatusPending, applications.created[0].Status)
		require.Equal(t, "pro-1", applications.created[0].ProfessionalUserSub)
		require.Equal(t, "clinic-1", applications.created[0].ClinicID)
		require.Empty(t, negotiations.created)
	})

	t.Run(`proposed rate opens a pending negotiation alongside the application`, func(t *testing.T) {
		applications := &fakeApplicationStore{}
		negotiations := &fakeNegotiationStore{}
		h := newTestImpl(activeJob(models.JobTypeTemporary), applications, negotiations)

		resp, err := h.Apply("pro-1", applicationapimodels.ApplyRequest{JobID: "job-1", ProposedRate: floatPtr(45)})
		require.NoError(t, err)
		require.Equal(t, models.ApplicationStatusNegotiating, resp.ApplicationStatus)
		require.Len(t, applications.created, 1)
		require.Equal(t, models.ApplicationStatusNegotiating, applications.created[0].Status)
		require.Len(t, negotiations.created, 1)
		require.Equal(t, "application-1", negotiations.created[0].ApplicationID)
		require.Equal(t, models.NegotiationStatusPending, negotiations.created[0].Status)
		require.Equal(t, models.ActorProfessional, negotiations.created[0].FromType)
		require.Equal(t, 45.0, *negotiations.created[0].ProposedHourlyRate)
	})

	t.Run(`second apply for the same pair conflicts`, func(t *testing.T) {
		applications := &fakeApplicationStore{createErr: applicationstore.ErrDuplicate}
		h := newTestImpl(activeJob(models.JobTypeTemporary), applications, &fakeNegotiationStore{})

		_, err := h.Apply("pro-1", applicationapimodels.ApplyRequest{JobID: "job-1"})
		require.Error(t, err)
		require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run(`closed job refuses applications`, func(t *testing.T) {
		job := activeJob(models.JobTypeTemporary)
		job.Status = models.JobStatusCompleted
		applications := &fakeApplicationStore{}
		h := newTestImpl(job, applications, &fakeNegotiationStore{})

		_, err := h.Apply("pro-1", applicationapimodels.ApplyRequest{JobID: "job-1"})
		require.Error(t, err)
		require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		require.Empty(t, applications.created)
	})

	t.Run(`unknown job is not found`, func(t *testing.T) {
		h := newTestImpl(nil, &fakeApplicationStore{}, &fakeNegotiationStore{})

		_, err := h.Apply("pro-1", applicationapimodels.ApplyRequest{JobID: "missing"})
		require.Error(t, err)
		require.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run(`hourly proposal against a permanent job is rejected before any write`, func(t *testing.T) {
		applications := &fakeApplicationStore{}
		h := newTestImpl(activeJob(models.JobTypePermanent), applications, &fakeNegotiationStore{})

		_, err := h.Apply("pro-1", applicationapimodels.ApplyRequest{JobID: "job-1", ProposedRate: floatPtr(70)})
		require.Error(t, err)
		require.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
		require.Empty(t, applications.created)
	})
}
