package mailer_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/pulsecheck/internal/app/system/mailer"
)

func TestBuildCheckInEmail(t *testing.T) {
	msg := mailer.BuildCheckInEmail(mailer.CheckInEmailData{
		SiteName:  "PulseCheck",
		FirstName: "Alice",
		GreenURL:  "http://localhost:3000/mood-response?employeeId=abc&mood=green",
		AmberURL:  "http://localhost:3000/mood-response?employeeId=abc&mood=amber",
		RedURL:    "http://localhost:3000/mood-response?employeeId=abc&mood=red",
	})

	if msg.Subject != "Daily Check-In: How are you feeling today?" {
		t.Errorf("subject: got %q", msg.Subject)
	}
	if !strings.Contains(msg.HTMLBody, "Alice") {
		t.Error("HTML body missing first name")
	}
	for _, mood := range []string{"green", "amber", "red"} {
		want := "mood=" + mood
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("HTML body missing %s link", mood)
		}
		if !strings.Contains(msg.TextBody, want) {
			t.Errorf("text body missing %s link", mood)
		}
	}
}
