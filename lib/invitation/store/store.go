package invitationstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"dental-staff-backend/models"
	dbmodels "dental-staff-backend/models/db"
)

// ErrDuplicate reports a conditional-insert conflict on the
// (job_id, professional_user_sub) unique index.
var ErrDuplicate = errors.New("invitation already exists for this job and professional")

type Provider interface {
	Create(rec dbmodels.JobInvitation) (id string, err error)
	GetByID(invitationID string) (rec *dbmodels.JobInvitation, err error)
	Update(invitationID string, updMap map[string]interface{}) error
	ListByJob(jobID string) (list []dbmodels.JobInvitation, err error)
	ListByProfessional(professionalSub string) (list []dbmodels.JobInvitation, err error)
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

func (i impl) Create(rec dbmodels.JobInvitation) (id string, err error) {
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

func (i impl) GetByID(invitationID string) (*dbmodels.JobInvitation, error) {
	rec := dbmodels.JobInvitation{}
	err := i.db.
		Model(&dbmodels.JobInvitation{}).
		Where("id = ?", invitationID).
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

func (i impl) Update(invitationID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.JobInvitation{}).
		Where("id = ?", invitationID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return nil
}

func (i impl) ListByJob(jobID string) (list []dbmodels.JobInvitation, err error) {
	list = []dbmodels.JobInvitation{}
	err = i.db.
		Model(dbmodels.JobInvitation{}).
		Where("job_id = ?", jobID).
		Order("created_at desc").
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

func (i impl) ListByProfessional(professionalSub string) (list []dbmodels.JobInvitation, err error) {
	list = []dbmodels.JobInvitation{}
	err = i.db.
		Model(dbmodels.JobInvitation{}).
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
		Model(dbmodels.JobInvitation{}).
		Where("job_id = ?", jobID).
		Where("status in (?)", []models.InvitationStatus{models.InvitationStatusPending, models.InvitationStatusNegotiating}).
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
		Delete(&dbmodels.JobInvitation{}).
		Error
}
