package renewal

import (
	"fmt"
	"strings"
)

// Notice is the message data for one renewal reminder, ready for the
// external notification sender.  MarkWatch produces the content; it never
// sends anything.
type Notice struct {
	To      string `json:"to,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// BuildNotice renders the reminder message for one due or overdue mark.
func BuildNotice(r Reminder) Notice {
	classes := strings.Join(r.Classes, ", ")

	subject := fmt.Sprintf("Renewal reminder - %s (Class %s) due %s", r.Mark, classes, r.ExpiryDate)
	if r.Tier == TierOverdue {
		subject = fmt.Sprintf("OVERDUE renewal - %s (Class %s) was due %s", r.Mark, classes, r.ExpiryDate)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", r.Owner)
	switch r.Tier {
	case TierOverdue:
		fmt.Fprintf(&b,
			"Our records show that your trademark %q (Class %s, Reg. No. %s) passed its renewal date on %s, %d day(s) ago.\n\n",
			r.Mark, classes, r.RegistrationNo, r.ExpiryDate, -r.DaysUntil)
		b.WriteString("Please contact us urgently so we can assess restoration options before the mark lapses irrecoverably.\n\n")
	default:
		fmt.Fprintf(&b,
			"This is a friendly reminder that your trademark %q (Class %s, Reg. No. %s) is due for renewal on %s, in %d day(s).\n\n",
			r.Mark, classes, r.RegistrationNo, r.ExpiryDate, r.DaysUntil)
		b.WriteString("Please reply to confirm whether you'd like us to proceed with renewal formalities. If yes, we'll share the checklist and fee estimate.\n\n")
	}
	b.WriteString("Thanks,\nThe Trademark Watch Team")

	return Notice{
		To:      r.OwnerEmail,
		Subject: subject,
		Body:    b.String(),
	}
}
