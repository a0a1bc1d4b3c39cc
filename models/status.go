package models

import "github.com/pkg/errors"

// Every entity status is a closed enum with a single transition table.
// Handlers validate mutations through CanTransition instead of comparing
// raw strings.

type JobStatus string

const (
	JobStatusActive       JobStatus = "active"
	JobStatusScheduled    JobStatus = "scheduled"
	JobStatusActionNeeded JobStatus = "action_needed"
	JobStatusCompleted    JobStatus = "completed"
	JobStatusInactive     JobStatus = "inactive"
	JobStatusCancelled    JobStatus = "cancelled"
)

// Monotonic toward a terminal state, except action_needed -> active when
// negotiations resolve.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusActive:       {JobStatusScheduled, JobStatusActionNeeded, JobStatusCompleted, JobStatusInactive, JobStatusCancelled},
	JobStatusScheduled:    {JobStatusActionNeeded, JobStatusCompleted, JobStatusCancelled},
	JobStatusActionNeeded: {JobStatusActive, JobStatusScheduled, JobStatusCancelled},
}

func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case JobStatusActive, JobStatusScheduled, JobStatusActionNeeded,
		JobStatusCompleted, JobStatusInactive, JobStatusCancelled:
		return st, nil
	}
	return "", errors.Errorf("unknown job status (%v)", s)
}

func (s JobStatus) IsTerminal() bool {
	_, ok := jobTransitions[s]
	return !ok
}

func (s JobStatus) CanTransition(to JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AcceptsApplications reports whether professionals may still apply.
func (s JobStatus) AcceptsApplications() bool {
	return s == JobStatusActive
}

type ApplicationStatus string

const (
	ApplicationStatusPending      ApplicationStatus = "pending"
	ApplicationStatusNegotiating  ApplicationStatus = "negotiating"
	ApplicationStatusAccepted     ApplicationStatus = "accepted"
	ApplicationStatusScheduled    ApplicationStatus = "scheduled"
	ApplicationStatusDeclined     ApplicationStatus = "declined"
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"
	ApplicationStatusJobCancelled ApplicationStatus = "job_cancelled"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:     {ApplicationStatusNegotiating, ApplicationStatusAccepted, ApplicationStatusScheduled, ApplicationStatusDeclined, ApplicationStatusWithdrawn, ApplicationStatusJobCancelled},
	ApplicationStatusNegotiating: {ApplicationStatusNegotiating, ApplicationStatusScheduled, ApplicationStatusDeclined, ApplicationStatusWithdrawn, ApplicationStatusJobCancelled},
	ApplicationStatusAccepted:    {ApplicationStatusScheduled, ApplicationStatusDeclined, ApplicationStatusJobCancelled},
	ApplicationStatusScheduled:   {ApplicationStatusJobCancelled},
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationStatusPending, ApplicationStatusNegotiating, ApplicationStatusAccepted,
		ApplicationStatusScheduled, ApplicationStatusDeclined, ApplicationStatusWithdrawn,
		ApplicationStatusJobCancelled:
		return st, nil
	}
	return "", errors.Errorf("unknown application status (%v)", s)
}

func (s ApplicationStatus) IsTerminal() bool {
	_, ok := applicationTransitions[s]
	return !ok
}

func (s ApplicationStatus) CanTransition(to ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type NegotiationStatus string

const (
	NegotiationStatusPending      NegotiationStatus = "pending"
	NegotiationStatusAccepted     NegotiationStatus = "accepted"
	NegotiationStatusDeclined     NegotiationStatus = "declined"
	NegotiationStatusCounterOffer NegotiationStatus = "counter_offer"
)

// counter_offer is not terminal: the same row is revisited by either actor
// until one side accepts or declines.
var negotiationTransitions = map[NegotiationStatus][]NegotiationStatus{
	NegotiationStatusPending:      {NegotiationStatusAccepted, NegotiationStatusDeclined, NegotiationStatusCounterOffer},
	NegotiationStatusCounterOffer: {NegotiationStatusAccepted, NegotiationStatusDeclined, NegotiationStatusCounterOffer},
}

func ParseNegotiationStatus(s string) (NegotiationStatus, error) {
	st := NegotiationStatus(s)
	switch st {
	case NegotiationStatusPending, NegotiationStatusAccepted,
		NegotiationStatusDeclined, NegotiationStatusCounterOffer:
		return st, nil
	}
	return "", errors.Errorf("unknown negotiation status (%v)", s)
}

func (s NegotiationStatus) IsTerminal() bool {
	_, ok := negotiationTransitions[s]
	return !ok
}

func (s NegotiationStatus) CanTransition(to NegotiationStatus) bool {
	for _, allowed := range negotiationTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type InvitationStatus string

const (
	InvitationStatusPending     InvitationStatus = "pending"
	InvitationStatusAccepted    InvitationStatus = "accepted"
	InvitationStatusDeclined    InvitationStatus = "declined"
	InvitationStatusNegotiating InvitationStatus = "negotiating"
)

// accepted and declined are immutable; negotiating only records that an
// application/negotiation pair now carries the conversation.
var invitationTransitions = map[InvitationStatus][]InvitationStatus{
	InvitationStatusPending:     {InvitationStatusAccepted, InvitationStatusDeclined, InvitationStatusNegotiating},
	InvitationStatusNegotiating: {InvitationStatusAccepted, InvitationStatusDeclined},
}

func ParseInvitationStatus(s string) (InvitationStatus, error) {
	st := InvitationStatus(s)
	switch st {
	case InvitationStatusPending, InvitationStatusAccepted,
		InvitationStatusDeclined, InvitationStatusNegotiating:
		return st, nil
	}
	return "", errors.Errorf("unknown invitation status (%v)", s)
}

func (s InvitationStatus) IsTerminal() bool {
	_, ok := invitationTransitions[s]
	return !ok
}

func (s InvitationStatus) CanTransition(to InvitationStatus) bool {
	for _, allowed := range invitationTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ActorType identifies which side of a negotiation performed an action.
type ActorType string

const (
	ActorClinic       ActorType = "clinic"
	ActorProfessional ActorType = "professional"
)
