package notify

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"dental-staff-backend/config"
	"dental-staff-backend/lib/smtp"
)

// Notifications are best effort: a delivery failure is logged and never
// surfaces to the caller.

type Provider interface {
	ApplicationReceived(toEmail, jobTitle, professionalSub string)
	InvitationResponded(toEmail, jobTitle, professionalSub, action string)
	NegotiationResponded(toEmail, jobTitle, professionalSub, response string)
	JobCancelled(toEmail, jobTitle string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		from: config.Conf.Smtp.From,
	}
}

type impl struct {
	from string
}

func (i impl) ApplicationReceived(toEmail, jobTitle, professionalSub string) {
	subject := "New application"
	message := fmt.Sprintf("Professional %s applied to your job posting %q.", professionalSub, jobTitle)
	i.send(toEmail, message, subject)
}

func (i impl) InvitationResponded(toEmail, jobTitle, professionalSub, action string) {
	subject := "Invitation response"
	message := fmt.Sprintf("Professional %s %s your invitation for %q.", professionalSub, action, jobTitle)
	i.send(toEmail, message, subject)
}

func (i impl) NegotiationResponded(toEmail, jobTitle, professionalSub, response string) {
	subject := "Negotiation update"
	message := fmt.Sprintf("Professional %s responded (%s) in the negotiation for %q.", professionalSub, response, jobTitle)
	i.send(toEmail, message, subject)
}

func (i impl) JobCancelled(toEmail, jobTitle string) {
	subject := "Job cancelled"
	message := fmt.Sprintf("The job posting %q was cancelled.", jobTitle)
	i.send(toEmail, message, subject)
}

func (i impl) send(toEmail, message, subject string) {
	if toEmail == "" {
		return
	}
	err := smtp.Instance.SendEMail(i.from, toEmail, message, subject)
	if err != nil {
		log.WithError(err).WithField("recipient", toEmail).Error("failed to send notification email")
	}
}
