package filestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"dental-staff-backend/config"
	"dental-staff-backend/db"
	"dental-staff-backend/lib/apperror"
	filesdbstorage "dental-staff-backend/lib/file-storage/storage"
	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	Upload(ctx context.Context, ownerSub, clinicID string, fileType dbmodels.FileType, fileName, contentType string, file []byte) (id string, err error)
	Get(ctx context.Context, ownerSub, fileID string) (rec *dbmodels.DocumentFile, body []byte, err error)
	List(ownerSub string, fileType dbmodels.FileType) (list []dbmodels.DocumentFile, err error)
}

var Instance Provider

func NewHandler(s3 *minio.Client) {
	Instance = impl{
		s3:    s3,
		store: filesdbstorage.NewInstance(db.DB),
	}
}

type impl struct {
	s3    *minio.Client
	store filesdbstorage.Provider
}

func (i impl) Upload(ctx context.Context, ownerSub, clinicID string, fileType dbmodels.FileType, fileName, contentType string, file []byte) (id string, err error) {
	if len(file) == 0 {
		return "", apperror.BadRequest("file is empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	id, err = i.store.SaveFile(dbmodels.DocumentFile{
		OwnerSub:    ownerSub,
		ClinicID:    clinicID,
		FileType:    fileType,
		Name:        fileName,
		ContentType: contentType,
		Size:        int64(len(file)),
	})
	if err != nil {
		return "", err
	}
	_, err = i.s3.PutObject(ctx, config.Conf.S3.Bucket, id, bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to store file body")
	}
	return id, nil
}

func (i impl) Get(ctx context.Context, ownerSub, fileID string) (*dbmodels.DocumentFile, []byte, error) {
	rec, err := i.store.GetFile(fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, apperror.NotFound("file not found")
	}
	if rec.OwnerSub != ownerSub {
		return nil, nil, apperror.Forbidden("file belongs to another user")
	}
	object, err := i.s3.GetObject(ctx, config.Conf.S3.Bucket, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to fetch file body")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read file body")
	}
	return rec, body, nil
}

func (i impl) List(ownerSub string, fileType dbmodels.FileType) (list []dbmodels.DocumentFile, err error) {
	return i.store.GetFileListByType(ownerSub, fileType)
}
