package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "dental-staff-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.Clinic{}); err != nil {
		return errors.Wrap(err, "failed to migrate Clinic")
	}
	if err := DB.AutoMigrate(&dbmodels.JobPosting{}); err != nil {
		return errors.Wrap(err, "failed to migrate JobPosting")
	}
	if err := DB.AutoMigrate(&dbmodels.JobApplication{}); err != nil {
		return errors.Wrap(err, "failed to migrate JobApplication")
	}
	if err := DB.AutoMigrate(&dbmodels.JobNegotiation{}); err != nil {
		return errors.Wrap(err, "failed to migrate JobNegotiation")
	}
	if err := DB.AutoMigrate(&dbmodels.JobInvitation{}); err != nil {
		return errors.Wrap(err, "failed to migrate JobInvitation")
	}
	if err := DB.AutoMigrate(&dbmodels.DocumentFile{}); err != nil {
		return errors.Wrap(err, "failed to migrate DocumentFile")
	}
	log.Info("migrations completed")
	return nil
}
