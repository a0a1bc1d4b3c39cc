package jobstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	jobapimodels "dental-staff-backend/models/api/job"
	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.JobPosting) (id string, err error)
	// GetByID looks up a posting by its system-wide job id, across all
	// clinics; callers resolving an unknown job go through this path.
	GetByID(id string) (rec *dbmodels.JobPosting, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ListCount(filter jobapimodels.JobFilter) (count int64, err error)
	List(filter jobapimodels.JobFilter) (list []dbmodels.JobPosting, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobPosting) (id string, err error) {
	err = i.db.
		Omit("Clinic").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.JobPosting, error) {
	rec := dbmodels.JobPosting{}
	err := i.db.
		Model(&dbmodels.JobPosting{}).
		Where("id = ?", id).
		Preload("Clinic").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.JobPosting{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.JobPosting{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) ListCount(filter jobapimodels.JobFilter) (count int64, err error) {
	tx := i.db.
		Model(dbmodels.JobPosting{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) List(filter jobapimodels.JobFilter) (list []dbmodels.JobPosting, err error) {
	list = []dbmodels.JobPosting{}
	tx := i.db.
		Model(dbmodels.JobPosting{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset).Order("job_postings.created_at desc")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter jobapimodels.JobFilter) {
	if filter.ClinicID != "" {
		tx.Where("clinic_id = ?", filter.ClinicID)
	}
	if len(filter.Statuses) != 0 {
		tx.Where("status in (?)", filter.Statuses)
	}
	if filter.JobType != "" {
		tx.Where("job_type = ?", filter.JobType)
	}
	if filter.City != "" {
		tx.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.Search != "" {
		tx.Where("LOWER(title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}
