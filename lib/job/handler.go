package jobhandler

import (
	log "github.com/sirupsen/logrus"

	"dental-staff-backend/db"
	"dental-staff-backend/lib/access"
	"dental-staff-backend/lib/apperror"
	applicationstore "dental-staff-backend/lib/application/store"
	clinicstore "dental-staff-backend/lib/clinic/store"
	invitationstore "dental-staff-backend/lib/invitation/store"
	jobstore "dental-staff-backend/lib/job/store"
	negotiationstore "dental-staff-backend/lib/negotiation/store"
	"dental-staff-backend/models"
	jobapimodels "dental-staff-backend/models/api/job"
	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Create(subjectSub string, groups access.Groups, data jobapimodels.JobData) (id string, err error)
	GetByID(id string) (item jobapimodels.JobView, err error)
	List(filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	StatusChange(subjectSub string, groups access.Groups, id string, status models.JobStatus) error
	Delete(subjectSub string, groups access.Groups, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            jobstore.NewInstance(db.DB),
		clinicStore:      clinicstore.NewInstance(db.DB),
		applicationStore: applicationstore.NewInstance(db.DB),
		invitationStore:  invitationstore.NewInstance(db.DB),
		negotiationStore: negotiationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store            jobstore.Provider
	clinicStore      clinicstore.Provider
	applicationStore applicationstore.Provider
	invitationStore  invitationstore.Provider
	negotiationStore negotiationstore.Provider
}

func (i impl) Create(subjectSub string, groups access.Groups, data jobapimodels.JobData) (id string, err error) {
	clinic, err := i.clinicStore.GetByID(data.ClinicID)
	if err != nil {
		return "", err
	}
	if clinic == nil {
		return "", apperror.NotFound("clinic not found")
	}
	if !access.CanManageClinic(subjectSub, groups, clinic) {
		return "", apperror.Forbidden("no access to this clinic")
	}
	rec := dbmodels.JobPosting{
		ClinicID:      data.ClinicID,
		ClinicUserSub: subjectSub,
		Title:         data.Title,
		Description:   data.Description,
		JobType:       data.JobType,
		Status:        models.JobStatusActive,
		// address snapshot taken at posting time; later clinic edits do not
		// retroactively move published jobs
		Address:     clinic.Address,
		HourlyRate:  data.HourlyRate,
		SalaryMin:   data.SalaryMin,
		SalaryMax:   data.SalaryMax,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		HoursPerDay: data.HoursPerDay,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	i.getLogger(id, subjectSub).Info("job posting created")
	return id, nil
}

func (i impl) GetByID(id string) (jobapimodels.JobView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if rec == nil {
		return jobapimodels.JobView{}, apperror.NotFound("job not found")
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) List(filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]jobapimodels.JobView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, jobapimodels.JobConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) StatusChange(subjectSub string, groups access.Groups, id string, status models.JobStatus) error {
	logger := i.getLogger(id, subjectSub).WithField("status", status)
	rec, _, err := i.resolveForManage(subjectSub, groups, id)
	if err != nil {
		return err
	}
	if rec.Status == status {
		return nil
	}
	if !rec.Status.CanTransition(status) {
		return apperror.Newf(apperror.KindConflict, "job status cannot change from %v to %v", rec.Status, status)
	}
	err = i.store.Update(id, map[string]interface{}{"status": status})
	if err != nil {
		return err
	}
	logger.Info("job status changed")
	return nil
}

// Delete removes a posting only when nothing active references it; there is
// no storage-level cascade, the pre-checks here are the guard.
func (i impl) Delete(subjectSub string, groups access.Groups, id string) error {
	rec, _, err := i.resolveForManage(subjectSub, groups, id)
	if err != nil {
		return err
	}
	openApplications, err := i.applicationStore.CountOpenByJob(id)
	if err != nil {
		return err
	}
	if openApplications > 0 {
		return apperror.Conflict("job has active applications")
	}
	openInvitations, err := i.invitationStore.CountOpenByJob(id)
	if err != nil {
		return err
	}
	if openInvitations > 0 {
		return apperror.Conflict("job has pending invitations")
	}
	openNegotiations, err := i.negotiationStore.CountOpenByJob(id)
	if err != nil {
		return err
	}
	if openNegotiations > 0 {
		return apperror.Conflict("job has open negotiations")
	}
	err = i.store.Delete(rec.ID)
	if err != nil {
		return err
	}
	i.getLogger(id, subjectSub).Info("job posting deleted")
	return nil
}

func (i impl) resolveForManage(subjectSub string, groups access.Groups, id string) (*dbmodels.JobPosting, *dbmodels.Clinic, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, apperror.NotFound("job not found")
	}
	clinic := rec.Clinic
	if clinic == nil {
		clinic, err = i.clinicStore.GetByID(rec.ClinicID)
		if err != nil {
			return nil, nil, err
		}
	}
	if !access.CanManageJob(subjectSub, groups, rec, clinic) {
		return nil, nil, apperror.Forbidden("no access to this job")
	}
	return rec, clinic, nil
}

func (i impl) getLogger(jobID, userID string) *log.Entry {
	logger := log.WithField("job_id", jobID)
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}
