package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"

	"dental-staff-backend/config"
)

var Client *minio.Client

// MakeBucket creates the documents bucket when it does not exist yet.
func MakeBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.Bucket
	location := "us-east-1"
	exists, err := Client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}
