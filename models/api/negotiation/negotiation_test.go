package negotiationapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dental-staff-backend/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestProposalValidateFor(t *testing.T) {
	t.Run(`hourly jobs require a positive hourly rate`, func(t *testing.T) {
		require.NoError(t, Proposal{HourlyRate: floatPtr(85)}.ValidateFor(models.JobTypeTemporary))
		require.Error(t, Proposal{}.ValidateFor(models.JobTypeTemporary))
		require.Error(t, Proposal{HourlyRate: floatPtr(0)}.ValidateFor(models.JobTypeMultiDay))
		require.Error(t, Proposal{HourlyRate: floatPtr(-5)}.ValidateFor(models.JobTypeMultiDay))
	})

	t.Run(`hourly jobs reject salary ranges`, func(t *testing.T) {
		p := Proposal{HourlyRate: floatPtr(85), SalaryMin: intPtr(90000)}
		require.Error(t, p.ValidateFor(models.JobTypeTemporary))
	})

	t.Run(`permanent jobs require a full salary range`, func(t *testing.T) {
		require.NoError(t, Proposal{SalaryMin: intPtr(90000), SalaryMax: intPtr(120000)}.ValidateFor(models.JobTypePermanent))
		require.Error(t, Proposal{SalaryMin: intPtr(90000)}.ValidateFor(models.JobTypePermanent))
		require.Error(t, Proposal{SalaryMax: intPtr(120000)}.ValidateFor(models.JobTypePermanent))
	})

	t.Run(`permanent jobs reject an inverted range`, func(t *testing.T) {
		require.Error(t, Proposal{SalaryMin: intPtr(120000), SalaryMax: intPtr(90000)}.ValidateFor(models.JobTypePermanent))
		require.Error(t, Proposal{SalaryMin: intPtr(90000), SalaryMax: intPtr(90000)}.ValidateFor(models.JobTypePermanent))
	})

	t.Run(`permanent jobs reject hourly rates`, func(t *testing.T) {
		p := Proposal{HourlyRate: floatPtr(85), SalaryMin: intPtr(90000), SalaryMax: intPtr(120000)}
		require.Error(t, p.ValidateFor(models.JobTypePermanent))
	})
}

func TestRespondRequestValidate(t *testing.T) {
	t.Run(`closed response set`, func(t *testing.T) {
		require.NoError(t, RespondRequest{Response: models.NegotiationStatusAccepted}.Validate())
		require.NoError(t, RespondRequest{Response: models.NegotiationStatusDeclined}.Validate())
		require.NoError(t, RespondRequest{Response: models.NegotiationStatusCounterOffer}.Validate())
		require.Error(t, RespondRequest{Response: models.NegotiationStatusPending}.Validate())
		require.Error(t, RespondRequest{Response: "maybe"}.Validate())
	})

	t.Run(`counter fields reshape into a proposal`, func(t *testing.T) {
		r := RespondRequest{
			Response:      models.NegotiationStatusCounterOffer,
			CounterHourly: floatPtr(95),
		}
		p := r.CounterProposal()
		require.NotNil(t, p.HourlyRate)
		require.Equal(t, float64(95), *p.HourlyRate)
		require.False(t, p.HasSalary())
	})
}
