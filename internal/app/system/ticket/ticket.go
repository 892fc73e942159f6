// internal/app/system/ticket/ticket.go

// Package ticket builds the per-member entry ticket: a compact payload
// encoded into a scannable QR code, embedded in a one-page HTML
// artifact suitable for email attachment.
package ticket

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"
	"github.com/vijayakumarjith/startupsp/internal/app/system/mailer"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// qrSize is the pixel size of the rendered QR code.
const qrSize = 256

// Payload is what the venue scanner reads back from the QR code. The
// JSON encoding must round-trip losslessly.
type Payload struct {
	RegistrationID string `json:"reg_id"`
	Name           string `json:"name"`
	Team           string `json:"team"`
}

// Encode serializes the payload for embedding in the QR code.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Decode parses a scanned payload.
func Decode(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("decode ticket payload: %w", err)
	}
	return p, nil
}

// QRCodePNG renders the payload as a QR code PNG.
func QRCodePNG(p Payload) ([]byte, error) {
	data, err := p.Encode()
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Medium, qrSize)
}

// Details carries the event information printed on the ticket.
type Details struct {
	EventName    string
	WorkshopInfo string // venue, date, schedule
}

// Build produces the attachable one-page ticket for one team member.
func Build(team models.Team, member models.Member, details Details) (mailer.Attachment, error) {
	payload := Payload{
		RegistrationID: team.RegistrationID,
		Name:           member.Name,
		Team:           team.TeamName,
	}

	png, err := QRCodePNG(payload)
	if err != nil {
		return mailer.Attachment{}, fmt.Errorf("render ticket QR: %w", err)
	}

	data := artifactData{
		EventName:      details.EventName,
		WorkshopInfo:   details.WorkshopInfo,
		TeamName:       team.TeamName,
		RegistrationID: team.RegistrationID,
		MemberName:     member.Name,
		MemberEmail:    member.Email,
		MemberPhone:    member.Phone,
		QRDataURI:      template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	}

	var buf bytes.Buffer
	if err := artifactTemplate.Execute(&buf, data); err != nil {
		return mailer.Attachment{}, fmt.Errorf("render ticket artifact: %w", err)
	}

	return mailer.Attachment{
		Filename:    fmt.Sprintf("%s_%s_ticket.html", team.RegistrationID, sanitizeName(member.Name)),
		ContentType: "text/html",
		Data:        buf.Bytes(),
	}, nil
}

// sanitizeName makes a member name safe for use in a filename.
func sanitizeName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "member"
	}
	return string(out)
}

type artifactData struct {
	EventName      string
	WorkshopInfo   string
	TeamName       string
	RegistrationID string
	MemberName     string
	MemberEmail    string
	MemberPhone    string
	QRDataURI      template.URL
}

var artifactTemplate = template.Must(template.New("ticket").Parse(artifactHTMLTemplate))

const artifactHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.EventName}} — Entry Ticket</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 420px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 28px 28px 20px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 22px; font-weight: 600; color: #4f46e5;">{{.EventName}}</h1>
              <p style="margin: 8px 0 0; font-size: 13px; color: #6b7280;">Workshop Entry Ticket</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 28px; text-align: center;">
              <img src="{{.QRDataURI}}" alt="entry QR code" width="256" height="256" style="border: 1px solid #e5e7eb; border-radius: 8px;">
            </td>
          </tr>
          <tr>
            <td style="padding: 0 28px 28px;">
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="font-size: 14px; color: #374151;">
                <tr><td style="padding: 4px 0; color: #6b7280;">Name</td><td style="padding: 4px 0; text-align: right; font-weight: 600;">{{.MemberName}}</td></tr>
                <tr><td style="padding: 4px 0; color: #6b7280;">Team</td><td style="padding: 4px 0; text-align: right; font-weight: 600;">{{.TeamName}}</td></tr>
                <tr><td style="padding: 4px 0; color: #6b7280;">Registration</td><td style="padding: 4px 0; text-align: right; font-weight: 600;">{{.RegistrationID}}</td></tr>
                <tr><td style="padding: 4px 0; color: #6b7280;">Email</td><td style="padding: 4px 0; text-align: right;">{{.MemberEmail}}</td></tr>
                <tr><td style="padding: 4px 0; color: #6b7280;">Phone</td><td style="padding: 4px 0; text-align: right;">{{.MemberPhone}}</td></tr>
              </table>
              {{if .WorkshopInfo}}
              <div style="margin-top: 20px; background-color: #f3f4f6; border-radius: 8px; padding: 14px;">
                <p style="margin: 0; font-size: 13px; color: #374151; line-height: 1.6;">{{.WorkshopInfo}}</p>
              </div>
              {{end}}
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
