package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"dental-staff-backend/config"
	s3client "dental-staff-backend/s3"
)

func InitS3() {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("failed to initialize the S3 client")
		return
	}
	s3client.Client = minioClient

	if err = s3client.MakeBucket(context.Background()); err != nil {
		log.WithError(err).Error("S3 connection failed, could not ensure the documents bucket")
	}
	log.Info("S3 client initialized")
}
