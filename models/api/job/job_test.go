package jobapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dental-staff-backend/models"
)

func TestJobDataValidate(t *testing.T) {
	base := JobData{
		ClinicID: "clinic-1",
		Title:    "Dental Hygienist",
	}

	t.Run(`hourly job needs a rate`, func(t *testing.T) {
		data := base
		data.JobType = models.JobTypeTemporary
		require.Error(t, data.Validate())
		data.HourlyRate = 65
		require.NoError(t, data.Validate())
	})

	t.Run(`permanent job needs a proper range`, func(t *testing.T) {
		data := base
		data.JobType = models.JobTypePermanent
		require.Error(t, data.Validate())
		data.SalaryMin = 120000
		data.SalaryMax = 90000
		require.Error(t, data.Validate())
		data.SalaryMin = 90000
		data.SalaryMax = 120000
		require.NoError(t, data.Validate())
	})

	t.Run(`clinic and title are mandatory`, func(t *testing.T) {
		data := JobData{JobType: models.JobTypeTemporary, HourlyRate: 65}
		require.Error(t, data.Validate())
		data.ClinicID = "clinic-1"
		require.Error(t, data.Validate())
	})

	t.Run(`unknown job type is rejected`, func(t *testing.T) {
		data := base
		data.JobType = "contract"
		require.Error(t, data.Validate())
	})
}

func TestStatusChangeRequestValidate(t *testing.T) {
	require.NoError(t, StatusChangeRequest{Status: models.JobStatusCancelled}.Validate())
	require.Error(t, StatusChangeRequest{Status: "open"}.Validate())
}
