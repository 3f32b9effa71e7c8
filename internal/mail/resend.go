// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

// Package mail delivers transactional email through the Resend API.
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
	"github.com/samber/oops"
)

// ResendMailer implements auth.Mailer using the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	appURL string
}

// NewResendMailer creates a mailer sending through Resend.
//
// from must be an address under a domain verified with Resend. appURL is the
// public base URL of the frontend; verification links point there.
func NewResendMailer(apiKey, from, appURL string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, oops.Errorf("resend API key is required")
	}
	if from == "" {
		return nil, oops.Errorf("sender address is required")
	}
	if appURL == "" {
		return nil, oops.Errorf("app URL is required")
	}
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		appURL: appURL,
	}, nil
}

// SendVerification emails a registration link carrying the verification token.
func (m *ResendMailer) SendVerification(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/register/%s", m.appURL, token)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
</head>
<body style="margin:0;padding:0;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="border:1px solid #e2e8f0;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="font-size:24px;margin:0 0 8px 0;">Quibble</h1>
              <h2 style="font-size:18px;margin:0 0 24px 0;">Confirm your email address</h2>
              <p style="font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                Click the button below to finish creating your account.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#2563eb;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Complete Registration
                    </a>
                  </td>
                </tr>
              </table>
              <p style="font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                This link expires in 24 hours. If you didn't sign up for Quibble, you can safely ignore this email.
              </p>
              <p style="font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, link, link, link)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Quibble <%s>", m.from),
		To:      []string{email},
		Subject: "Confirm your Quibble registration",
		Html:    html,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return oops.Code("MAIL_SEND_FAILED").
			With("operation", "send verification email").
			Wrap(err)
	}
	return nil
}
