// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// WorkshopInviteData holds data for the workshop invitation email. The
// ticket artifact itself is attached by the caller.
type WorkshopInviteData struct {
	EventName    string
	MemberName   string
	TeamName     string
	WorkshopInfo string // venue, date, schedule
}

// BuildWorkshopInvite creates the workshop invitation email body. The
// caller sets To and attaches the ticket.
func BuildWorkshopInvite(data WorkshopInviteData) Email {
	return Email{
		Subject:  fmt.Sprintf("%s workshop invitation — %s", data.EventName, data.TeamName),
		TextBody: buildWorkshopInviteText(data),
		HTMLBody: buildWorkshopInviteHTML(data),
	}
}

func buildWorkshopInviteText(data WorkshopInviteData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.MemberName))
	buf.WriteString(fmt.Sprintf("Team %s is invited to the %s workshop.\n\n", data.TeamName, data.EventName))
	if data.WorkshopInfo != "" {
		buf.WriteString(data.WorkshopInfo + "\n\n")
	}
	buf.WriteString("Your personal entry ticket is attached. Bring it (printed or on your phone); the QR code will be scanned at the venue.\n")
	return buf.String()
}

func buildWorkshopInviteHTML(data WorkshopInviteData) string {
	tmpl := template.Must(template.New("workshop_invite").Parse(workshopInviteHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

// Phase2SelectionData holds data for the phase-2 selection email.
type Phase2SelectionData struct {
	EventName      string
	MemberName     string
	TeamName       string
	RegistrationID string
	Score          int
}

// BuildPhase2Selection creates the phase-2 congratulation email. No
// attachment; the caller sets To.
func BuildPhase2Selection(data Phase2SelectionData) Email {
	return Email{
		Subject:  fmt.Sprintf("%s — Team %s selected for Phase 2!", data.EventName, data.TeamName),
		TextBody: buildPhase2SelectionText(data),
		HTMLBody: buildPhase2SelectionHTML(data),
	}
}

func buildPhase2SelectionText(data Phase2SelectionData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.MemberName))
	buf.WriteString(fmt.Sprintf("Congratulations! Team %s (registration %s) has been selected for Phase 2 of %s.\n\n",
		data.TeamName, data.RegistrationID, data.EventName))
	buf.WriteString(fmt.Sprintf("Your phase-1 pitch scored %d points.\n\n", data.Score))
	buf.WriteString("Sign in to the portal to submit your phase-2 proposal before the deadline.\n")
	return buf.String()
}

func buildPhase2SelectionHTML(data Phase2SelectionData) string {
	tmpl := template.Must(template.New("phase2_selection").Parse(phase2SelectionHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const workshopInviteHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Workshop Invitation</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.EventName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hi {{.MemberName}},
              </p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Team <strong>{{.TeamName}}</strong> is invited to the {{.EventName}} workshop.
              </p>
              {{if .WorkshopInfo}}
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 16px; margin-bottom: 24px;">
                <p style="margin: 0; font-size: 14px; color: #374151; line-height: 1.6;">{{.WorkshopInfo}}</p>
              </div>
              {{end}}
              <p style="margin: 0; font-size: 14px; color: #6b7280; line-height: 1.5;">
                Your personal entry ticket is attached. Bring it printed or on your phone; the QR code will be scanned at the venue.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const phase2SelectionHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Phase 2 Selection</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.EventName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hi {{.MemberName}},
              </p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Congratulations! Team <strong>{{.TeamName}}</strong> (registration {{.RegistrationID}}) has been selected for Phase&nbsp;2.
              </p>
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 24px; text-align: center; margin-bottom: 24px;">
                <span style="font-size: 32px; font-weight: 700; color: #1f2937;">{{.Score}}</span>
                <span style="font-size: 14px; color: #6b7280;"> / 100 phase-1 points</span>
              </div>
              <p style="margin: 0; font-size: 14px; color: #6b7280; line-height: 1.5;">
                Sign in to the portal to submit your phase-2 proposal before the deadline.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
