package authcore

import (
	"context"
	"fmt"
)

// Mail is an outbound message handed to the integrator's [Mailer].
type Mail struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers mail. Send returns the provider's message id when the
// provider reports one; implementations should respect ctx cancellation.
type Mailer interface {
	Send(ctx context.Context, mail Mail) (id string, err error)
}

func verifyEmailMail(to, url string) Mail {
	return Mail{
		To:      to,
		Subject: "Verify your email address",
		Text:    "Click on the link to verify your email address: " + url,
		HTML: fmt.Sprintf(
			`<!doctype html><html><body><p>Click on the link below to verify your email address.</p><p><a href="%s">Verify email</a></p></body></html>`,
			url,
		),
	}
}

func passwordResetMail(to, url string) Mail {
	return Mail{
		To:      to,
		Subject: "Reset your password",
		Text:    "Click on the link to reset your password: " + url,
		HTML: fmt.Sprintf(
			`<!doctype html><html><body><p>Click on the link below to reset your password.</p><p><a href="%s">Reset password</a></p></body></html>`,
			url,
		),
	}
}
