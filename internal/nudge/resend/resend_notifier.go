package resend

import (
	"bytes"
	"html/template"

	"github.com/brk3/flexhabits/internal/nudge"
	"github.com/resend/resend-go/v2"
)

const defaultFrom = "onboarding@resend.dev"

type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

var emailTemplate = template.Must(template.New("email").Parse(`
<p>These streaks end today ({{.Date}}) unless you check in:</p>
<ul>
{{range .Habits}}
  <li>{{.Name}}: {{.Streak}} day streak</li>
{{end}}
</ul>
`))

func render(habits []nudge.AtRisk, date string) (string, error) {
	data := struct {
		Habits []nudge.AtRisk
		Date   string
	}{
		Habits: habits,
		Date:   date,
	}
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ResendNotifier) SendNudge(habits []nudge.AtRisk, date string) error {
	html, err := render(habits, date)
	if err != nil {
		return err
	}
	from := r.From
	if from == "" {
		from = defaultFrom
	}

	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{r.Email},
		Subject: "Streaks at risk today",
		Html:    html,
	}

	_, err = client.Emails.Send(params)
	return err
}

var _ nudge.Notifier = (*ResendNotifier)(nil)
