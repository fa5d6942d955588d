package services

import (
	"bytes"
	"html/template"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "feedback"}}<p>Hi {{.Artist}},</p>
<p>{{.Client}} left you a {{.Rating}}-star review:</p>
<blockquote>{{.Comment}}</blockquote>
<p>Your rating is now {{printf "%.1f" .Average}} from {{.Total}} reviews.</p>{{end}}

{{define "status"}}<p>Hi {{.Name}},</p>
<p>Your artist account status is now <strong>{{.Status}}</strong>.</p>{{end}}

{{define "maintenance"}}<p>Hello,</p>
<p>{{.Site}} is entering scheduled maintenance.</p>
{{if .Message}}<p>{{.Message}}</p>{{end}}
<p>Your portfolio will be back online as soon as we are done.</p>{{end}}

{{define "broadcast"}}<p>{{.Message}}</p>{{end}}

{{define "blogpost"}}<h2>{{.Title}}</h2>
{{if .Excerpt}}<p>{{.Excerpt}}</p>{{end}}
<p><a href="{{.URL}}">Read the full post</a></p>
<p style="font-size:small"><a href="{{.Unsubscribe}}">Unsubscribe</a></p>{{end}}

{{define "contact-admin"}}<p>New contact message from {{.Name}} &lt;{{.Email}}&gt;</p>
{{if .Subject}}<p>Subject: {{.Subject}}</p>{{end}}
<blockquote>{{.Message}}</blockquote>{{end}}

{{define "contact-reply"}}<p>Hi {{.Name}},</p>
<p>{{.Reply}}</p>
<hr><p style="font-size:small">You wrote: {{.Original}}</p>{{end}}

{{define "notification"}}<h3>{{.Title}}</h3>
<p>{{.Message}}</p>{{end}}
`))

// RenderEmail executes one of the named email bodies.
func RenderEmail(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
