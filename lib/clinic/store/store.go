package clinicstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Clinic) (id string, err error)
	GetByID(id string) (rec *dbmodels.Clinic, err error)
	GetByOwner(ownerSub string) (rec *dbmodels.Clinic, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Clinic) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Clinic, error) {
	rec := dbmodels.Clinic{}
	err := i.db.
		Model(&dbmodels.Clinic{}).
		Where("id = ?", id).
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

func (i impl) GetByOwner(ownerSub string) (*dbmodels.Clinic, error) {
	rec := dbmodels.Clinic{}
	err := i.db.
		Model(&dbmodels.Clinic{}).
		Where("owner_sub = ?", ownerSub).
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
		Model(&dbmodels.Clinic{}).
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
	rec := dbmodels.Clinic{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}
