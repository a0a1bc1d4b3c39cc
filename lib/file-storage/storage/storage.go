package filesdbstorage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	SaveFile(rec dbmodels.DocumentFile) (id string, err error)
	GetFile(fileID string) (rec *dbmodels.DocumentFile, err error)
	GetFileListByType(ownerSub string, fileType dbmodels.FileType) (list []dbmodels.DocumentFile, err error)
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}

type impl struct {
	db *gorm.DB
}

func (i impl) SaveFile(rec dbmodels.DocumentFile) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetFile(fileID string) (*dbmodels.DocumentFile, error) {
	rec := dbmodels.DocumentFile{}
	err := i.db.
		Model(&dbmodels.DocumentFile{}).
		Where("id = ?", fileID).
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

func (i impl) GetFileListByType(ownerSub string, fileType dbmodels.FileType) (list []dbmodels.DocumentFile, err error) {
	err = i.db.
		Model(&dbmodels.DocumentFile{}).
		Where("owner_sub = ? AND file_type = ?", ownerSub, fileType).
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}
