package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// CheckInEmailData holds data for the daily check-in email.
// The three URLs are pre-authenticated mood-response links; possessing a
// link is the only credential needed to record that mood.
type CheckInEmailData struct {
	SiteName  string
	FirstName string
	GreenURL  string
	AmberURL  string
	RedURL    string
}

// BuildCheckInEmail creates the daily check-in email with both HTML and
// text bodies. The caller sets To.
func BuildCheckInEmail(data CheckInEmailData) Email {
	return Email{
		Subject:  "Daily Check-In: How are you feeling today?",
		TextBody: buildCheckInText(data),
		HTMLBody: buildCheckInHTML(data),
	}
}

func buildCheckInText(data CheckInEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.FirstName))
	buf.WriteString("How are you feeling today? Let us know by opening one of these links:\n\n")
	buf.WriteString("I'm doing great:  " + data.GreenURL + "\n")
	buf.WriteString("I'm okay:         " + data.AmberURL + "\n")
	buf.WriteString("I need support:   " + data.RedURL + "\n\n")
	buf.WriteString("Your response helps us support you and your team better.\n")
	return buf.String()
}

func buildCheckInHTML(data CheckInEmailData) string {
	tmpl := template.Must(template.New("checkin").Parse(checkInHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const checkInHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Daily Check-In</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: white; border-radius: 12px; padding: 40px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
      <h1 style="color: #1e293b; margin: 0 0 16px 0; font-size: 28px;">{{.SiteName}} daily check-in</h1>
      <p style="color: #64748b; font-size: 16px; line-height: 1.6; margin: 0 0 32px 0;">
        Hi {{.FirstName}},<br><br>
        How are you feeling today? Let us know by clicking one of the buttons below:
      </p>

      <div style="margin: 32px 0;">
        <a href="{{.GreenURL}}" style="display: block; background-color: #22c55e; color: white; text-decoration: none; padding: 16px 32px; border-radius: 8px; text-align: center; font-weight: 600; font-size: 18px; margin-bottom: 12px;">
          I'm doing great!
        </a>

        <a href="{{.AmberURL}}" style="display: block; background-color: #f59e0b; color: white; text-decoration: none; padding: 16px 32px; border-radius: 8px; text-align: center; font-weight: 600; font-size: 18px; margin-bottom: 12px;">
          I'm okay
        </a>

        <a href="{{.RedURL}}" style="display: block; background-color: #ef4444; color: white; text-decoration: none; padding: 16px 32px; border-radius: 8px; text-align: center; font-weight: 600; font-size: 18px;">
          I need support
        </a>
      </div>

      <p style="color: #94a3b8; font-size: 14px; margin: 32px 0 0 0; text-align: center;">
        Your response helps us support you and your team better.
      </p>
    </div>
  </div>
</body>
</html>`
