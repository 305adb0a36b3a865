package services

// EmailSender defines the sending surface the services need from the Gmail client
type EmailSender interface {
	SendEmail(to, subject, textBody, htmlBody string) error
}

// FailedEmail represents a recipient whose send failed during a broadcast
type FailedEmail struct {
	Email string
	Error string
}
