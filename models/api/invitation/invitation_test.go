package invitationapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dental-staff-backend/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestRespondRequestValidate(t *testing.T) {
	t.Run(`closed response set`, func(t *testing.T) {
		require.NoError(t, RespondRequest{Response: models.InvitationStatusAccepted}.Validate())
		require.NoError(t, RespondRequest{Response: models.InvitationStatusDeclined}.Validate())
		require.NoError(t, RespondRequest{Response: models.InvitationStatusNegotiating}.Validate())
		require.Error(t, RespondRequest{Response: models.InvitationStatusPending}.Validate())
		require.Error(t, RespondRequest{Response: "later"}.Validate())
	})

	t.Run(`counter terms reshape into a proposal`, func(t *testing.T) {
		r := RespondRequest{
			Response:           models.InvitationStatusNegotiating,
			ProposedHourlyRate: floatPtr(70),
		}
		p := r.Proposal()
		require.NotNil(t, p.HourlyRate)
		require.NoError(t, p.ValidateFor(models.JobTypeTemporary))
		require.Error(t, p.ValidateFor(models.JobTypePermanent))
	})
}

func TestInvitationDataValidate(t *testing.T) {
	require.Error(t, InvitationData{}.Validate())
	require.Error(t, InvitationData{JobID: "job-1"}.Validate())
	require.NoError(t, InvitationData{JobID: "job-1", ProfessionalUserSub: "pro-1"}.Validate())
}
