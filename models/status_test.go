package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobStatus(t *testing.T) {
	t.Run(`parse known and unknown values`, func(t *testing.T) {
		st, err := ParseJobStatus("active")
		require.NoError(t, err)
		require.Equal(t, JobStatusActive, st)

		_, err = ParseJobStatus("open")
		require.Error(t, err)
	})

	t.Run(`only active accepts applications`, func(t *testing.T) {
		require.True(t, JobStatusActive.AcceptsApplications())
		require.False(t, JobStatusScheduled.AcceptsApplications())
		require.False(t, JobStatusActionNeeded.AcceptsApplications())
		require.False(t, JobStatusCancelled.AcceptsApplications())
	})

	t.Run(`terminal states have no outgoing transitions`, func(t *testing.T) {
		require.True(t, JobStatusCompleted.IsTerminal())
		require.True(t, JobStatusInactive.IsTerminal())
		require.True(t, JobStatusCancelled.IsTerminal())
		require.False(t, JobStatusActive.IsTerminal())
		require.False(t, JobStatusCompleted.CanTransition(JobStatusActive))
	})

	t.Run(`action_needed can recover to active`, func(t *testing.T) {
		require.True(t, JobStatusActionNeeded.CanTransition(JobStatusActive))
		require.True(t, JobStatusActionNeeded.CanTransition(JobStatusScheduled))
		require.False(t, JobStatusScheduled.CanTransition(JobStatusActive))
	})
}

func TestApplicationStatus(t *testing.T) {
	t.Run(`pending can move anywhere forward`, func(t *testing.T) {
		for _, to := range []ApplicationStatus{
			ApplicationStatusNegotiating,
			ApplicationStatusAccepted,
			ApplicationStatusScheduled,
			ApplicationStatusDeclined,
			ApplicationStatusWithdrawn,
			ApplicationStatusJobCancelled,
		} {
			require.True(t, ApplicationStatusPending.CanTransition(to), "pending -> %v", to)
		}
	})

	t.Run(`negotiating may stay negotiating`, func(t *testing.T) {
		require.True(t, ApplicationStatusNegotiating.CanTransition(ApplicationStatusNegotiating))
	})

	t.Run(`declined and withdrawn are terminal`, func(t *testing.T) {
		require.True(t, ApplicationStatusDeclined.IsTerminal())
		require.True(t, ApplicationStatusWithdrawn.IsTerminal())
		require.True(t, ApplicationStatusJobCancelled.IsTerminal())
		require.False(t, ApplicationStatusDeclined.CanTransition(ApplicationStatusPending))
	})

	t.Run(`scheduled only falls to job_cancelled`, func(t *testing.T) {
		require.True(t, ApplicationStatusScheduled.CanTransition(ApplicationStatusJobCancelled))
		require.False(t, ApplicationStatusScheduled.CanTransition(ApplicationStatusDeclined))
	})
}

func TestNegotiationStatus(t *testing.T) {
	t.Run(`counter_offer keeps the round open`, func(t *testing.T) {
		require.False(t, NegotiationStatusCounterOffer.IsTerminal())
		require.True(t, NegotiationStatusCounterOffer.CanTransition(NegotiationStatusCounterOffer))
		require.True(t, NegotiationStatusCounterOffer.CanTransition(NegotiationStatusAccepted))
		require.True(t, NegotiationStatusCounterOffer.CanTransition(NegotiationStatusDeclined))
	})

	t.Run(`accepted and declined close the round`, func(t *testing.T) {
		require.True(t, NegotiationStatusAccepted.IsTerminal())
		require.True(t, NegotiationStatusDeclined.IsTerminal())
	})

	t.Run(`parse rejects unknown values`, func(t *testing.T) {
		_, err := ParseNegotiationStatus("countered")
		require.Error(t, err)
	})
}

func TestInvitationStatus(t *testing.T) {
	t.Run(`pending allows every response`, func(t *testing.T) {
		require.True(t, InvitationStatusPending.CanTransition(InvitationStatusAccepted))
		require.True(t, InvitationStatusPending.CanTransition(InvitationStatusDeclined))
		require.True(t, InvitationStatusPending.CanTransition(InvitationStatusNegotiating))
	})

	t.Run(`negotiating still resolves but never reopens`, func(t *testing.T) {
		require.True(t, InvitationStatusNegotiating.CanTransition(InvitationStatusAccepted))
		require.True(t, InvitationStatusNegotiating.CanTransition(InvitationStatusDeclined))
		require.False(t, InvitationStatusNegotiating.CanTransition(InvitationStatusNegotiating))
	})

	t.Run(`accepted and declined are immutable`, func(t *testing.T) {
		require.True(t, InvitationStatusAccepted.IsTerminal())
		require.True(t, InvitationStatusDeclined.IsTerminal())
	})
}
