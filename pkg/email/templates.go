package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"hearing-care-backend/pkg/i18n"
)

// ClinicInfo is the clinic contact block printed in outgoing emails.
type ClinicInfo struct {
	Name    string
	Phone   string
	Address string
	Website string
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	Name             string
	Email            string
	Phone            string
	Subject          string
	Message          string
	PreferredContact string
	ReceivedAt       time.Time
	Clinic           ClinicInfo
}

// madrid is used to print the received-at time for the clinic staff.
var madrid = loadLocation("Europe/Madrid")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

var preferredContactLabels = map[string]string{
	"email":    "Correo electrónico",
	"phone":    "Teléfono",
	"whatsapp": "WhatsApp",
}

// businessNotificationTemplate is always rendered in Spanish for the clinic staff.
var businessNotificationTemplate = template.Must(template.New("business").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <title>Nuevo mensaje de contacto</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0f766e; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Nuevo mensaje de contacto</h1>
        </div>
        <div class="content">
            <div class="field"><span class="label">Nombre:</span> {{.Name}}</div>
            <div class="field"><span class="label">Correo:</span> {{.Email}}</div>
            <div class="field"><span class="label">Teléfono:</span> {{.Phone}}</div>
            <div class="field"><span class="label">Contacto preferido:</span> {{.PreferredLabel}}</div>
            <div class="field"><span class="label">Asunto:</span> {{.Subject}}</div>
            <div class="field">
                <div class="label">Mensaje:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Recibido el {{.ReceivedAt}} desde el formulario web de {{.ClinicName}}.</p>
            <p>Para responder, escribe a: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`))

// clientConfirmationTemplate receives already-translated strings.
var clientConfirmationTemplate = template.Must(template.New("client").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .summary { background: white; padding: 15px; border-left: 4px solid #0f766e; margin: 15px 0; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.ClinicName}}</h1>
        </div>
        <div class="content">
            <p>{{.Greeting}}</p>
            <p>{{.Intro}}</p>
            <div class="summary">
                <h3>{{.SummaryTitle}}</h3>
                <p><strong>{{.SubjectLabel}}:</strong> {{.Subject}}</p>
                <p><strong>{{.MessageLabel}}:</strong></p>
                <p style="white-space: pre-wrap;">{{.Message}}</p>
            </div>
            <p>{{.ChannelLine}}</p>
            {{if .UrgentLine}}<p>{{.UrgentLine}}</p>{{end}}
            <p>{{.Regards}}<br>{{.Signature}}</p>
        </div>
        <div class="footer">
            {{if .ClinicAddress}}<p>{{.ClinicAddress}}</p>{{end}}
            {{if .ClinicWebsite}}<p><a href="{{.ClinicWebsite}}">{{.ClinicWebsite}}</a></p>{{end}}
        </div>
    </div>
</body>
</html>`))

// BusinessNotification renders the email sent to the clinic inbox.
func BusinessNotification(to string, data ContactEmailData) (Message, error) {
	preferred, ok := preferredContactLabels[data.PreferredContact]
	if !ok {
		preferred = data.PreferredContact
	}

	view := struct {
		ContactEmailData
		PreferredLabel string
		ReceivedAt     string
		ClinicName     string
	}{
		ContactEmailData: data,
		PreferredLabel:   preferred,
		ReceivedAt:       data.ReceivedAt.In(madrid).Format("02/01/2006 15:04"),
		ClinicName:       data.Clinic.Name,
	}

	var body bytes.Buffer
	if err := businessNotificationTemplate.Execute(&body, view); err != nil {
		return Message{}, fmt.Errorf("failed to execute business template: %w", err)
	}

	return Message{
		To:       []string{to},
		ReplyTo:  data.Email,
		Subject:  fmt.Sprintf("Nuevo contacto web: %s", data.Subject),
		HTMLBody: body.String(),
	}, nil
}

// ClientConfirmation renders the auto-reply sent to the submitter in the
// language carried by ctx.
func ClientConfirmation(ctx context.Context, data ContactEmailData) (Message, error) {
	channel := data.PreferredContact
	switch channel {
	case "email":
		channel = i18n.TrC(ctx, "contact-channel", "email")
	case "phone":
		channel = i18n.TrC(ctx, "contact-channel", "phone")
	case "whatsapp":
		channel = i18n.TrC(ctx, "contact-channel", "WhatsApp")
	}

	subject := i18n.Tr(ctx, "We have received your message - {{.Clinic}}", "Clinic", data.Clinic.Name)

	view := map[string]string{
		"Lang":          i18n.TagFrom(ctx).String(),
		"Title":         subject,
		"ClinicName":    data.Clinic.Name,
		"Greeting":      i18n.Tr(ctx, "Hello {{.Name}},", "Name", data.Name),
		"Intro":         i18n.Tr(ctx, "Thank you for contacting us. We have received your message and will reply as soon as possible."),
		"SummaryTitle":  i18n.Tr(ctx, "Summary of your message"),
		"SubjectLabel":  i18n.Tr(ctx, "Subject"),
		"Subject":       data.Subject,
		"MessageLabel":  i18n.Tr(ctx, "Message"),
		"Message":       data.Message,
		"ChannelLine":   i18n.Tr(ctx, "We will contact you by {{.Channel}}.", "Channel", channel),
		"Regards":       i18n.Tr(ctx, "Kind regards,"),
		"Signature":     i18n.Tr(ctx, "The {{.Clinic}} team", "Clinic", data.Clinic.Name),
		"ClinicAddress": data.Clinic.Address,
		"ClinicWebsite": data.Clinic.Website,
	}
	if data.Clinic.Phone != "" {
		view["UrgentLine"] = i18n.Tr(ctx, "If you need urgent assistance, call us at {{.Phone}}.", "Phone", data.Clinic.Phone)
	}

	var body bytes.Buffer
	if err := clientConfirmationTemplate.Execute(&body, view); err != nil {
		return Message{}, fmt.Errorf("failed to execute confirmation template: %w", err)
	}

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		HTMLBody: body.String(),
	}, nil
}
