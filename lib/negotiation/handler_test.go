package negotiationhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dental-staff-backend/lib/access"
	"dental-staff-backend/lib/apperror"
	applicationstore "dental-staff-backend/lib/application/store"
	clinicstore "dental-staff-backend/lib/clinic/store"
	jobstore "dental-staff-backend/lib/job/store"
	negotiationstore "dental-staff-backend/lib/negotiation/store"
	"dental-staff-backend/models"
	negotiationapimodels "dental-staff-backend/models/api/negotiation"
	dbmodels "dental-staff-backend/models/db"
)

func floatPtr(v float64) *float64 { return &v }

func TestDeriveActor(t *testing.T) {
	clinic := &dbmodels.Clinic{
		OwnerSub:           "owner-1",
		AssociatedUserSubs: []string{"owner-1", "manager-1"},
	}
	job := &dbmodels.JobPosting{
		ClinicUserSub: "poster-1",
		Clinic:        clinic,
	}
	application := &dbmodels.JobApplication{
		ProfessionalUserSub: "pro-1",
	}
	clinicAdmin := access.NewGroups([]string{"Clinic Admin"})

	t.Run(`applying professional acts for the professional side`, func(t *testing.T) {
		actor, ok := DeriveActor("pro-1", access.NewGroups(nil), job, application)
		require.True(t, ok)
		require.Equal(t, models.ActorProfessional, actor)
	})

	t.Run(`posting owner acts for the clinic`, func(t *testing.T) {
		actor, ok := DeriveActor("poster-1", clinicAdmin, job, application)
		require.True(t, ok)
		require.Equal(t, models.ActorClinic, actor)
	})

	t.Run(`associated clinic user acts for the clinic`, func(t *testing.T) {
		actor, ok := DeriveActor("manager-1", clinicAdmin, job, application)
		require.True(t, ok)
		require.Equal(t, models.ActorClinic, actor)
	})

	t.Run(`third parties are rejected`, func(t *testing.T) {
		_, ok := DeriveActor("stranger", access.NewGroups([]string{"Professional"}), job, application)
		require.False(t, ok)
	})
}

func TestApplicationStatusFor(t *testing.T) {
	t.Run(`accept books, decline closes, counter keeps negotiating`, func(t *testing.T) {
		require.Equal(t, models.ApplicationStatusScheduled, ApplicationStatusFor(models.NegotiationStatusAccepted))
		require.Equal(t, models.ApplicationStatusDeclined, ApplicationStatusFor(models.NegotiationStatusDeclined))
		require.Equal(t, models.ApplicationStatusNegotiating, ApplicationStatusFor(models.NegotiationStatusCounterOffer))
	})
}

func TestResolveAgreedRate(t *testing.T) {
	t.Run(`professional accepts the clinic counter`, func(t *testing.T) {
		negotiation := &dbmodels.JobNegotiation{
			ProposedHourlyRate:      floatPtr(80),
			ClinicCounterHourlyRate: floatPtr(90),
		}
		rate, err := ResolveAgreedRate(models.ActorProfessional, negotiation, &dbmodels.JobApplication{})
		require.NoError(t, err)
		require.Equal(t, float64(90), *rate)
	})

	t.Run(`professional cannot accept before the clinic counters`, func(t *testing.T) {
		negotiation := &dbmodels.JobNegotiation{ProposedHourlyRate: floatPtr(80)}
		_, err := ResolveAgreedRate(models.ActorProfessional, negotiation, &dbmodels.JobApplication{})
		require.Error(t, err)
	})

	t.Run(`clinic accepts the professional counter first`, func(t *testing.T) {
		negotiation := &dbmodels.JobNegotiation{
			ProposedHourlyRate:            floatPtr(80),
			ProfessionalCounterHourlyRate: floatPtr(95),
		}
		rate, err := ResolveAgreedRate(models.ActorClinic, negotiation, &dbmodels.JobApplication{})
		require.NoError(t, err)
		require.Equal(t, float64(95), *rate)
	})

	t.Run(`clinic falls back to the opening proposal`, func(t *testing.T) {
		negotiation := &dbmodels.JobNegotiation{ProposedHourlyRate: floatPtr(80)}
		rate, err := ResolveAgreedRate(models.ActorClinic, negotiation, &dbmodels.JobApplication{})
		require.NoError(t, err)
		require.Equal(t, float64(80), *rate)

		application := &dbmodels.JobApplication{ProposedRate: floatPtr(75)}
		rate, err = ResolveAgreedRate(models.ActorClinic, &dbmodels.JobNegotiation{}, application)
		require.NoError(t, err)
		require.Equal(t, float64(75), *rate)
	})

	t.Run(`clinic cannot accept with no rate anywhere`, func(t *testing.T) {
		_, err := ResolveAgreedRate(models.ActorClinic, &dbmodels.JobNegotiation{}, &dbmodels.JobApplication{})
		require.Error(t, err)
	})
}

func TestJobUpdateFor(t *testing.T) {
	t.Run(`acceptance books an active job`, func(t *testing.T) {
		job := &dbmodels.JobPosting{Status: models.JobStatusActive}
		upd := jobUpdateFor(models.NegotiationStatusAccepted, job, "pro-1")
		require.Equal(t, models.JobStatusScheduled, upd["status"])
		require.Equal(t, "pro-1", upd["accepted_professional_sub"])
	})

	t.Run(`decline releases an action_needed job`, func(t *testing.T) {
		job := &dbmodels.JobPosting{Status: models.JobStatusActionNeeded}
		upd := jobUpdateFor(models.NegotiationStatusDeclined, job, "pro-1")
		require.Equal(t, models.JobStatusActive, upd["status"])
	})

	t.Run(`counter offers leave the job alone`, func(t *testing.T) {
		job := &dbmodels.JobPosting{Status: models.JobStatusActive}
		require.Nil(t, jobUpdateFor(models.NegotiationStatusCounterOffer, job, "pro-1"))
	})

	t.Run(`terminal jobs are not moved`, func(t *testing.T) {
		job := &dbmodels.JobPosting{Status: models.JobStatusCancelled}
		require.Nil(t, jobUpdateFor(models.NegotiationStatusAccepted, job, "pro-1"))
	})
}

type fakeNegotiationStore struct {
	negotiationstore.Provider
	negotiation *dbmodels.JobNegotiation
	updates     []map[string]interface{}
}

func (f *fakeNegotiationStore) GetByID(applicationID, negotiationID string) (*dbmodels.JobNegotiation, error) {
	return f.negotiation, nil
}

func (f *fakeNegotiationStore) Update(negotiationID string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

type fakeApplicationStore struct {
	applicationstore.Provider
	application *dbmodels.JobApplication
	updates     []map[string]interface{}
}

func (f *fakeApplicationStore) GetByID(applicationID string) (*dbmodels.JobApplication, error) {
	return f.application, nil
}

func (f *fakeApplicationStore) UpdateByJobAndProfessional(jobID, professionalSub string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
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
	negotiations *fakeNegotiationStore
	applications *fakeApplicationStore
	jobs         *fakeJobStore
	txRan        bool
}

func newRespondFixture(negotiation *dbmodels.JobNegotiation, application *dbmodels.JobApplication, job *dbmodels.JobPosting) *respondFixture {
	f := &respondFixture{
		negotiations: &fakeNegotiationStore{negotiation: negotiation},
		applications: &fakeApplicationStore{application: application},
		jobs:         &fakeJobStore{job: job},
	}
	f.handler = impl{
		store:            f.negotiations,
		applicationStore: f.applications,
		jobStore:         f.jobs,
		clinicStore:      &fakeClinicStore{},
		runTx: func(fn func(s txStores) error) error {
			f.txRan = true
			return fn(txStores{
				negotiations: f.negotiations,
				applications: f.applications,
				jobs:         f.jobs,
			})
		},
	}
	return f
}

func hourlyJobFixture() *dbmodels.JobPosting {
	return &dbmodels.JobPosting{
		BaseModel:     dbmodels.BaseModel{ID: "job-1"},
		ClinicID:      "clinic-1",
		ClinicUserSub: "owner-1",
		Clinic: &dbmodels.Clinic{
			OwnerSub:           "owner-1",
			AssociatedUserSubs: []string{"owner-1"},
		},
		Status:  models.JobStatusActive,
		JobType: models.JobTypeTemporary,
	}
}

func negotiatingApplicationFixture() *dbmodels.JobApplication {
	return &dbmodels.JobApplication{
		BaseModel:           dbmodels.BaseModel{ID: "application-1"},
		JobID:               "job-1",
		ClinicID:            "clinic-1",
		ProfessionalUserSub: "pro-1",
		Status:              models.ApplicationStatusNegotiating,
	}
}

func pendingNegotiationFixture() *dbmodels.JobNegotiation {
	return &dbmodels.JobNegotiation{
		BaseModel:     dbmodels.BaseModel{ID: "negotiation-1"},
		ApplicationID: "application-1",
		JobID:         "job-1",
		Status:        models.NegotiationStatusPending,
		FromType:      models.ActorProfessional,
	}
}

func TestRespond(t *testing.T) {
	clinicAdmin := access.NewGroups([]string{"Clinic Admin"})

	t.Run(`repeating a decline is a no-op without writes`, func(t *testing.T) {
		negotiation := pendingNegotiationFixture()
		negotiation.Status = models.NegotiationStatusDeclined
		f := newRespondFixture(negotiation, negotiatingApplicationFixture(), hourlyJobFixture())

		resp, err := f.handler.Respond("pro-1", access.NewGroups(nil), "application-1", "negotiation-1", negotiationapimodels.RespondRequest{
			Response: models.NegotiationStatusDeclined,
		})
		require.NoError(t, err)
		require.Equal(t, models.NegotiationStatusDeclined, resp.Response)
		require.False(t, f.txRan)
		require.Empty(t, f.negotiations.updates)
		require.Empty(t, f.applications.updates)
	})

	t.Run(`other responses to a settled negotiation conflict`, func(t *testing.T) {
		negotiation := pendingNegotiationFixture()
		negotiation.Status = models.NegotiationStatusAccepted
		f := newRespondFixture(negotiation, negotiatingApplicationFixture(), hourlyJobFixture())

		_, err := f.handler.Respond("pro-1", access.NewGroups(nil), "application-1", "negotiation-1", negotiationapimodels.RespondRequest{
			Response: models.NegotiationStatusCounterOffer,
			CounterHourly: floatPtr(55),
		})
		require.Error(t, err)
		require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		require.False(t, f.txRan)
	})

	t.Run(`outsiders are not a party to the negotiation`, func(t *testing.T) {
		f := newRespondFixture(pendingNegotiationFixture(), negotiatingApplicationFixture(), hourlyJobFixture())

		_, err := f.handler.Respond("stranger", access.NewGroups([]string{"Professional"}), "application-1", "negotiation-1", negotiationapimodels.RespondRequest{
			Response: models.NegotiationStatusDeclined,
		})
		require.Error(t, err)
		require.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run(`clinic accept settles on the professional counter`, func(t *testing.T) {
		negotiation := pendingNegotiationFixture()
		negotiation.ProfessionalCounterHourlyRate = floatPtr(50)
		f := newRespondFixture(negotiation, negotiatingApplicationFixture(), hourlyJobFixture())

		resp, err := f.handler.Respond("owner-1", clinicAdmin, "application-1", "negotiation-1", negotiationapimodels.RespondRequest{
			Response: models.NegotiationStatusAccepted,
		})
		require.NoError(t, err)
		require.Equal(t, models.ActorClinic, resp.Actor)
		require.Equal(t, models.ApplicationStatusScheduled, resp.ApplicationStatus)
		require.Equal(t, 50.0, *resp.AcceptedHourlyRate)

		require.Len(t, f.negotiations.updates, 1)
		require.Equal(t, models.NegotiationStatusAccepted, f.negotiations.updates[0]["status"])
		require.Equal(t, 50.0, *f.negotiations.updates[0]["agreed_hourly_rate"].(*float64))

		require.Len(t, f.applications.updates, 1)
		require.Equal(t, models.ApplicationStatusScheduled, f.applications.updates[0]["status"])
		require.Equal(t, 50.0, *f.applications.updates[0]["accepted_hourly_rate"].(*float64))
		require.Equal(t, 50.0, *f.applications.updates[0]["accepted_rate"].(*float64))

		require.Len(t, f.jobs.updates, 1)
		require.Equal(t, models.JobStatusScheduled, f.jobs.updates[0]["status"])
		require.Equal(t, "pro-1", f.jobs.updates[0]["accepted_professional_sub"])
	})

	t.Run(`clinic accept with no number on either side fails before any write`, func(t *testing.T) {
		f := newRespondFixture(pendingNegotiationFixture(), negotiatingApplicationFixture(), hourlyJobFixture())

		_, err := f.handler.Respond("owner-1", clinicAdmin, "application-1", "negotiation-1", negotiationapimodels.RespondRequest{
			Response: models.NegotiationStatusAccepted,
		})
		require.Error(t, err)
		require.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
		require.False(t, f.txRan)
	})

	t.Run(`professional decline releases an action_needed job`, func(t *testing.T) {
		job := hourlyJobFixture()
		job.Status = models.JobStatusActionNeeded
		f := newRespondFixture(pendingNegotiationFixture(), negotiatingApplicationFixture(), job)

		resp, err := f.handler.Respond("pro-1", access.NewGroups(nil), "application-1", "negotiation-1", negotiationapimodels.RespondRequest{
			Response: models.NegotiationStatusDeclined,
		})
		require.NoError(t, err)
		require.Equal(t, models.ApplicationStatusDeclined, resp.ApplicationStatus)
		require.Len(t, f.jobs.updates, 1)
		require.Equal(t, models.JobStatusActive, f.jobs.updates[0]["status"])
	})
}
