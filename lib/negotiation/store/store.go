package negotiationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"dental-staff-backend/models"
	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.JobNegotiation) (id string, err error)
	// GetByID resolves the composite key (applicationID, negotiationID).
	GetByID(applicationID, negotiationID string) (rec *dbmodels.JobNegotiation, err error)
	Update(negotiationID string, updMap map[string]interface{}) error
	ListByApplication(applicationID string) (list []dbmodels.JobNegotiation, err error)
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

func (i impl) Create(rec dbmodels.JobNegotiation) (id string, err error) {
	err = i.db.
		Omit("Application").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(applicationID, negotiationID string) (*dbmodels.JobNegotiation, error) {
	rec := dbmodels.JobNegotiation{}
	err := i.db.
		Model(&dbmodels.JobNegotiation{}).
		Where("id = ?", negotiationID).
		Where("application_id = ?", applicationID).
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

func (i impl) Update(negotiationID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.JobNegotiation{}).
		Where("id = ?", negotiationID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return nil
}

func (i impl) ListByApplication(applicationID string) (list []dbmodels.JobNegotiation, err error) {
	list = []dbmodels.JobNegotiation{}
	err = i.db.
		Model(dbmodels.JobNegotiation{}).
		Where("application_id = ?", applicationID).
		Order("created_at asc").
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
		Model(dbmodels.JobNegotiation{}).
		Where("job_id = ?", jobID).
		Where("status in (?)", []models.NegotiationStatus{models.NegotiationStatusPending, models.NegotiationStatusCounterOffer}).
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
		Delete(&dbmodels.JobNegotiation{}).
		Error
}
