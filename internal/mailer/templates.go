package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Message is a rendered transactional email.
type Message struct {
	To      string
	Subject string
	HTML    string
	// Kind names the template for logs; bodies are never logged.
	Kind string
}

const layout = `{{define "layout"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
{{template "body" .}}
<p>Best regards,<br>The {{.AppName}} team</p>
</div>{{end}}`

var templates = map[string]string{
	"welcome": `{{define "body"}}<h1 style="color: #333; text-align: center;">Welcome to {{.AppName}}!</h1>
<p>Hello {{.Name}},</p>
<p>Your account is ready. We are glad to have you on board.</p>
<p>If you have any questions, just reply to this email.</p>{{end}}`,

	"credentials": `{{define "body"}}<h2 style="color: #333;">Your {{.AppName}} account</h2>
<p>Hello {{.Name}},</p>
<p>An account was created for you. Sign in with the following credentials:</p>
<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
<p style="margin: 5px 0;"><strong>Email:</strong> {{.Email}}</p>
<p style="margin: 5px 0;"><strong>Temporary password:</strong> {{.Password}}</p>
</div>
<p>Please change your password after your first sign in.</p>
<p style="text-align: center;"><a href="{{.Link}}" style="background-color: #007bff; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px; display: inline-block;">Open my account</a></p>
<p style="color: #777; font-size: 14px;">If you did not expect this account, ignore this email.</p>{{end}}`,

	"password_reset": `{{define "body"}}<h1 style="color: #333; text-align: center;">Password recovery</h1>
<p>Hello {{.Name}},</p>
<p>We received a request to reset your password. Use the link below to choose a new one:</p>
<p style="text-align: center;"><a href="{{.Link}}" style="display: inline-block; padding: 10px 20px; background-color: #4CAF50; color: white; text-decoration: none; border-radius: 5px;">Reset password</a></p>
<p>If you did not ask for this, ignore this email.</p>
<p>The link is valid for {{.Validity}}.</p>{{end}}`,
}

var compiled = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(templates))
	for name, body := range templates {
		t := template.Must(template.New(name).Parse(layout))
		out[name] = template.Must(t.Parse(body))
	}
	return out
}()

type templateData struct {
	AppName  string
	Name     string
	Email    string
	Password string
	Link     string
	Validity string
}

func render(name string, data templateData) (string, error) {
	t, ok := compiled[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
