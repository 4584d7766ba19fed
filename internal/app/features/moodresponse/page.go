// internal/app/features/moodresponse/page.go
package moodresponse

import (
	"html/template"
	"io"

	"github.com/dalemusser/pulsecheck/internal/domain/models"
)

type pageData struct {
	Mood  models.Mood
	Emoji string
	IsRed bool
}

// renderThankYou writes the confirmation page. The page content varies by
// mood; a red response appends a support-resource notice.
func renderThankYou(w io.Writer, mood models.Mood) {
	emoji := map[models.Mood]string{
		models.MoodGreen: "😊",
		models.MoodAmber: "😐",
		models.MoodRed:   "😔",
	}[mood]

	_ = thankYouTmpl.Execute(w, pageData{
		Mood:  mood,
		Emoji: emoji,
		IsRed: mood == models.MoodRed,
	})
}

var thankYouTmpl = template.Must(template.New("thankyou").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Thank You</title>
  <style>
    body {
      margin: 0;
      padding: 0;
      font-family: Arial, sans-serif;
      min-height: 100vh;
      display: flex;
      align-items: center;
      justify-content: center;
    }
    .container {
      background: white;
      border-radius: 16px;
      padding: 48px;
      max-width: 500px;
      text-align: center;
      box-shadow: 0 20px 60px rgba(0,0,0,0.3);
    }
    h1 {
      color: #1e293b;
      margin: 0 0 16px 0;
      font-size: 32px;
    }
    p {
      color: #64748b;
      font-size: 18px;
      line-height: 1.6;
      margin: 0;
    }
    .emoji {
      font-size: 64px;
      margin-bottom: 24px;
    }
    .support {
      margin-top: 16px;
      color: #ef4444;
      font-weight: 600;
    }
    .mood-green { background: linear-gradient(135deg, #22c55e 0%, #16a34a 100%); }
    .mood-amber { background: linear-gradient(135deg, #f59e0b 0%, #d97706 100%); }
    .mood-red { background: linear-gradient(135deg, #ef4444 0%, #dc2626 100%); }
  </style>
</head>
<body class="mood-{{.Mood}}">
  <div class="container">
    <div class="emoji">{{.Emoji}}</div>
    <h1>Thank you for sharing!</h1>
    <p>Your response has been recorded. We appreciate you taking the time to check in with us.</p>
    {{if .IsRed}}<p class="support">If you need support, please reach out to your manager or HR.</p>{{end}}
  </div>
</body>
</html>
`))
