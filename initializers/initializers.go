package initializers

import (
	"context"

	"dental-staff-backend/config"
	"dental-staff-backend/fiberlog"
	applicationhandler "dental-staff-backend/lib/application"
	clinichandler "dental-staff-backend/lib/clinic"
	xlsexport "dental-staff-backend/lib/export/xls"
	filestorage "dental-staff-backend/lib/file-storage"
	invitationhandler "dental-staff-backend/lib/invitation"
	jobhandler "dental-staff-backend/lib/job"
	negotiationhandler "dental-staff-backend/lib/negotiation"
	"dental-staff-backend/lib/notify"
	s3client "dental-staff-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	notify.NewHandler()
	filestorage.NewHandler(s3client.Client)
	clinichandler.NewHandler()
	jobhandler.NewHandler()
	applicationhandler.NewHandler()
	invitationhandler.NewHandler()
	negotiationhandler.NewHandler()
	xlsexport.NewHandler()
}
