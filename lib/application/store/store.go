package applicationstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"dental-staff-backend/models"
	applicationapimodels "dental-staff-backend/models/api/application"
	dbmodels "dental-staff-backend/models/db"
)

// ErrDuplicate reports a conditional-insert conflict on the
// (job_id, professional_user_sub) unique index.
var ErrDuplicate = errors.New("application already exists for this job and professional")

type Provider interface {
	// Create is an insert-only-if-absent write: a second apply for the same
	// (job, professional) pair fails with ErrDuplicate instead of
	// overwriting the first.
	Create(rec dbmodels.JobApplication) (id string, err error)
	GetByID(applicationID string) (rec *dbmodels.JobApplication, err error)
	GetByJobAndProfessional(jobID, professionalSub string) (rec *dbmodels.JobApplication, err error)
	// UpdateByJobAndProfessional keys the write by the pair, not by the
	// caller's own subject, so a clinic-actor update targets the right row.
	UpdateByJobAndProfessional(jobID, professionalSub string, updMap map[string]interface{}) error
	ListCount(filter applicationapimodels.ApplicationFilter) (count int64, err error)
	List(filter applicationapimodels.ApplicationFilter) (list []dbmodels.JobApplication, err error)
	ListByProfessional(professionalSub string) (list []dbmodels.JobApplication, err error)
	CountOpenByJob(jobID string) (count int64, err error)
	DeleteByJob(jobID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobApplication) (id string, err error) {
	err = i.db.
		Omit("Job").
		Create(&rec).
		Error
	if err != nil {
		if strings.Contains(err.Error(), "(SQLSTATE 23505)") {
			return "", ErrDuplicate
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(applicationID string) (*dbmodels.JobApplication, error) {
	rec := dbmodels.JobApplication{}
	err := i.db.
		Model(&dbmodels.JobApplication{}).
		Where("id = ?", applicationID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByJobAndProfessional(jobID, professionalSub string) (*dbmodels.JobApplication, error) {
	rec := dbmodels.JobApplication{}
	err := i.db.
		Model(&dbmodels.JobApplication{}).
		Where("job_id = ?", jobID).
		Where("professional_user_sub = ?", professionalSub).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) UpdateByJobAndProfessional(jobID, professionalSub string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.JobApplication{}).
		Where("job_id = ?", jobID).
		Where("professional_user_sub = ?", professionalSub).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return nil
}

func (i impl) ListCount(filter applicationapimodels.ApplicationFilter) (count int64, err error) {
	tx := i.db.
		Model(dbmodels.JobApplication{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) List(filter applicationapimodels.ApplicationFilter) (list []dbmodels.JobApplication, err error) {
	list = []dbmodels.JobApplication{}
	tx := i.db.
		Model(dbmodels.JobApplication{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset).Order("created_at desc")
	err = tx.Preload("Job").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByProfessional(professionalSub string) (list []dbmodels.JobApplication, err error) {
	list = []dbmodels.JobApplication{}
	err = i.db.
		Model(dbmodels.JobApplication{}).
		Where("professional_user_sub = ?", professionalSub).
		Order("created_at desc").
		Preload("Job").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) CountOpenByJob(jobID string) (count int64, err error) {
	err = i.db.
		Model(dbmodels.JobApplication{}).
		Where("job_id = ?", jobID).
		Where("status in (?)", openApplicationStatuses).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) DeleteByJob(jobID string) error {
	return i.db.
		Where("job_id = ?", jobID).
		Delete(&dbmodels.JobApplication{}).
		Error
}

func (i impl) addFilter(tx *gorm.DB, filter applicationapimodels.ApplicationFilter) {
	if filter.JobID != "" {
		tx.Where("job_id = ?", filter.JobID)
	}
	if filter.ClinicID != "" {
		tx.Where("clinic_id = ?", filter.ClinicID)
	}
	if len(filter.Statuses) != 0 {
		tx.Where("status in (?)", filter.Statuses)
	}
}

var openApplicationStatuses = []models.ApplicationStatus{
	models.ApplicationStatusPending,
	models.ApplicationStatusNegotiating,
	models.ApplicationStatusAccepted,
	models.ApplicationStatusScheduled,
}
