package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"buddy-backend/internal/digest/domain"
	taskdomain "buddy-backend/internal/task/domain"

	"github.com/pkg/errors"
)

// DueLayout is how due dates appear in the email.
const DueLayout = "Mon, Jan 2, 2006, 3:04 PM UTC"

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"due":           func(t *taskdomain.Task) string { return t.DueDate.UTC().Format(DueLayout) },
	"upper":         strings.ToUpper,
	"priorityColor": priorityColor,
}).Parse(digestHTML))

func priorityColor(p taskdomain.Priority) string {
	switch p {
	case taskdomain.PriorityHigh:
		return "#dc2626"
	case taskdomain.PriorityMedium:
		return "#2563eb"
	default:
		return "#6b7280"
	}
}

// Subject is the email subject line for d.
func Subject(d *domain.Digest) string {
	n := d.Counts.TotalPending
	noun := "Tasks"
	if n == 1 {
		noun = "Task"
	}
	s := fmt.Sprintf("Daily Study Digest - %d %s", n, noun)
	if d.Counts.Overdue > 0 {
		s += fmt.Sprintf(" (%d Overdue!)", d.Counts.Overdue)
	}
	return s
}

// Render produces the HTML body for d. Task text is escaped.
func Render(d *domain.Digest) (string, error) {
	name := d.Name
	if name == "" {
		name = "there"
	}
	data := struct {
		*domain.Digest
		Greeting string
		Date     string
	}{
		Digest:   d,
		Greeting: name,
		Date:     d.GeneratedAt.UTC().Format("Monday, January 2, 2006"),
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "rendering digest")
	}
	return buf.String(), nil
}

const digestHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; border-radius: 12px 12px 0 0; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 28px;">Daily Study Digest</h1>
    <p style="color: rgba(255,255,255,0.9); margin: 10px 0 0 0; font-size: 16px;">{{.Date}}</p>
  </div>
  <div style="background: white; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 12px 12px;">
    <h2 style="color: #111827; margin-top: 0;">Hey {{.Greeting}}!</h2>
    <p style="color: #374151; font-size: 16px; line-height: 1.6;">Here's your task overview for today:</p>
    <table role="presentation" width="100%" style="margin: 25px 0; border-spacing: 10px;">
      <tr>
        <td style="background: {{if .Counts.Overdue}}#fee2e2{{else}}#f0fdf4{{end}}; padding: 15px; border-radius: 8px; text-align: center;">
          <p style="font-size: 32px; font-weight: bold; margin: 0; color: {{if .Counts.Overdue}}#dc2626{{else}}#16a34a{{end}};">{{.Counts.Overdue}}</p>
          <p style="margin: 5px 0 0 0; color: #6b7280; font-size: 13px;">Overdue</p>
        </td>
        <td style="background: #fef3c7; padding: 15px; border-radius: 8px; text-align: center;">
          <p style="font-size: 32px; font-weight: bold; margin: 0; color: #f59e0b;">{{.Counts.Today}}</p>
          <p style="margin: 5px 0 0 0; color: #6b7280; font-size: 13px;">Due Today</p>
        </td>
      </tr>
      <tr>
        <td style="background: #dbeafe; padding: 15px; border-radius: 8px; text-align: center;">
          <p style="font-size: 32px; font-weight: bold; margin: 0; color: #2563eb;">{{.Counts.ThisWeek}}</p>
          <p style="margin: 5px 0 0 0; color: #6b7280; font-size: 13px;">This Week</p>
        </td>
        <td style="background: #f3f4f6; padding: 15px; border-radius: 8px; text-align: center;">
          <p style="font-size: 32px; font-weight: bold; margin: 0; color: #6b7280;">{{.Counts.TotalPending}}</p>
          <p style="margin: 5px 0 0 0; color: #6b7280; font-size: 13px;">Total Pending</p>
        </td>
      </tr>
    </table>
{{range .Sections}}
    <div style="margin: 20px 0;">
      <h3 style="color: {{.Color}}; font-size: 18px; margin-bottom: 15px; border-bottom: 2px solid {{.Color}}; padding-bottom: 8px;">{{.Title}} ({{len .Tasks}})</h3>
{{- range .Tasks}}
      <div style="background: #f9fafb; padding: 15px; border-radius: 8px; margin: 10px 0; border-left: 4px solid {{priorityColor .Priority}};">
        <h4 style="margin: 0 0 8px 0; font-size: 16px;">{{.Title}}</h4>
        <p style="margin: 5px 0; color: #6b7280; font-size: 14px;"><strong>Subject:</strong> {{.SubjectName}}</p>
        <p style="margin: 5px 0; color: #6b7280; font-size: 14px;"><strong>Due:</strong> {{due .}}</p>
        <p style="margin: 5px 0; color: {{priorityColor .Priority}}; font-size: 14px; font-weight: 600;"><strong>Priority:</strong> {{upper (printf "%s" .Priority)}}</p>
{{- if .Description}}
        <p style="margin: 10px 0 0 0; color: #374151; font-size: 14px;">{{.Description}}</p>
{{- end}}
      </div>
{{- end}}
    </div>
{{end}}
    <div style="margin-top: 30px; padding: 20px; background: #f9fafb; border-radius: 8px; border-left: 4px solid #667eea;">
      <p style="color: #374151; margin: 0; font-size: 15px;"><strong>Tip:</strong> Focus on overdue and high-priority tasks first to stay on track!</p>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 2px solid #e5e7eb; text-align: center;">
      <p style="color: #374151; font-size: 16px; margin: 0;">Keep up the great work!</p>
      <p style="color: #9ca3af; font-size: 12px; margin-top: 15px;">- Your Buddy Study Companion</p>
      <p style="color: #d1d5db; font-size: 11px; margin-top: 10px;">This is an automated daily digest. You're receiving this because you have upcoming tasks in your study planner.</p>
    </div>
  </div>
</div>
`
