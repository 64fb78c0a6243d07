package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailService provides email delivery functionality
type EmailService struct {
	smtpHost     string
	smtpPort     int
	smtpUsername string
	smtpPassword string
	fromAddress  string
}

// NewEmailService creates a new EmailService
func NewEmailService(smtpHost string, smtpPort int, smtpUsername, smtpPassword, fromAddress string) *EmailService {
	return &EmailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
		fromAddress:  fromAddress,
	}
}

// SendInvitationEmail sends a workspace invitation to the given address.
func (s *EmailService) SendInvitationEmail(to, workspaceName, inviterName, inviteURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.fromAddress, "Tandem"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s invited you to the %s workspace", inviterName, workspaceName))
	m.SetBody("text/html", s.GenerateInvitationEmailHTML(workspaceName, inviterName, inviteURL))

	d := gomail.NewDialer(s.smtpHost, s.smtpPort, s.smtpUsername, s.smtpPassword)

	return d.DialAndSend(m)
}

// GenerateInvitationEmailHTML creates the invitation email HTML with inline
// styles for maximum client compatibility.
func (s *EmailService) GenerateInvitationEmailHTML(workspaceName, inviterName, inviteURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" lang="en">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>You're invited to %s</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Helvetica Neue', Arial, sans-serif; background-color: #f7f9fc;">
	<table border="0" cellpadding="0" cellspacing="0" width="100%%" style="border-collapse: collapse;">
		<tr>
			<td style="padding: 40px 0;">
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #611f69; border-radius: 8px 8px 0 0;">
					<tr>
						<td align="center" style="padding: 30px 0; color: #ffffff;">
							<h1 style="margin: 0; font-size: 28px; font-weight: 700;">Join %s on Tandem</h1>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff; box-shadow: 0 4px 15px rgba(0, 0, 0, 0.08);">
					<tr>
						<td style="padding: 40px 30px;">
							<p style="margin-top: 0; margin-bottom: 20px; color: #333333; font-size: 16px; line-height: 1.6;"><strong>%s</strong> invited you to collaborate in the <strong>%s</strong> workspace.</p>
							<p style="margin-top: 0; margin-bottom: 30px; color: #333333; font-size: 16px; line-height: 1.6;">Click the button below to accept the invitation and start chatting with your team.</p>
							<table border="0" cellpadding="0" cellspacing="0" align="center" style="border-collapse: collapse;">
								<tr>
									<td align="center" style="border-radius: 6px; background-color: #611f69;">
										<a href="%s" target="_blank" style="display: inline-block; padding: 14px 36px; font-size: 16px; color: #ffffff; text-decoration: none; border-radius: 6px; font-weight: 700;">Accept invitation</a>
									</td>
								</tr>
							</table>
							<p style="margin-top: 30px; margin-bottom: 0; color: #888888; font-size: 13px; line-height: 1.6;">If you weren't expecting this invitation, you can safely ignore this email.</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>`, workspaceName, workspaceName, inviterName, workspaceName, inviteURL)
}
