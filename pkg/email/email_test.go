package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"hearing-care-backend/pkg/i18n"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestService(capture *capturedMail, sendErr error) *EmailService {
	return &EmailService{
		host:     "smtp.example.com",
		port:     "587",
		username: "clinic@example.com",
		password: "app-pass",
		fromName: "Centro Auditivo Sol",
		sendMail: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			capture.addr = addr
			capture.from = from
			capture.to = to
			capture.msg = string(msg)
			return sendErr
		},
	}
}

func sampleData() ContactEmailData {
	return ContactEmailData{
		Name:             "Lucía <script>",
		Email:            "lucia@example.com",
		Phone:            "+34 600 000 000",
		Subject:          "Revisión de audífonos",
		Message:          "Quiero pedir cita.",
		PreferredContact: "whatsapp",
		ReceivedAt:       time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Clinic:           ClinicInfo{Name: "Centro Auditivo Sol", Phone: "910 000 000"},
	}
}

func TestSendBuildsMIMEMessage(t *testing.T) {
	var got capturedMail
	svc := newTestService(&got, nil)

	err := svc.Send(context.Background(), Message{
		To:       []string{"inbox@example.com"},
		ReplyTo:  "lucia@example.com",
		Subject:  "Revisión",
		HTMLBody: "<p>hola</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.Equal(t, "clinic@example.com", got.from)
	assert.Equal(t, []string{"inbox@example.com"}, got.to)
	assert.Contains(t, got.msg, "Reply-To: lucia@example.com\r\n")
	assert.Contains(t, got.msg, "Subject: =?utf-8?q?Revisi=C3=B3n?=\r\n")
	assert.Contains(t, got.msg, "Content-Type: text/html; charset=UTF-8")
	assert.True(t, strings.HasSuffix(got.msg, "\r\n\r\n<p>hola</p>"))
}

func TestSendErrors(t *testing.T) {
	var got capturedMail

	t.Run("transport failure is wrapped", func(t *testing.T) {
		svc := newTestService(&got, errors.New("535 auth failed"))
		err := svc.Send(context.Background(), Message{To: []string{"a@b.c"}})
		assert.ErrorContains(t, err, "535 auth failed")
	})

	t.Run("missing credentials", func(t *testing.T) {
		svc := newTestService(&got, nil)
		svc.password = ""
		assert.False(t, svc.IsConfigured())
		assert.Error(t, svc.Send(context.Background(), Message{To: []string{"a@b.c"}}))
	})

	t.Run("cancelled context", func(t *testing.T) {
		svc := newTestService(&got, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, svc.Send(ctx, Message{To: []string{"a@b.c"}}), context.Canceled)
	})
}

func TestBusinessNotification(t *testing.T) {
	msg, err := BusinessNotification("inbox@example.com", sampleData())
	require.NoError(t, err)

	assert.Equal(t, []string{"inbox@example.com"}, msg.To)
	assert.Equal(t, "lucia@example.com", msg.ReplyTo)
	assert.Equal(t, "Nuevo contacto web: Revisión de audífonos", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Contacto preferido:</span> WhatsApp")
	assert.Contains(t, msg.HTMLBody, "Lucía &lt;script&gt;", "user input must be escaped")
	assert.NotContains(t, msg.HTMLBody, "<script>")
}

func TestClientConfirmationLocalized(t *testing.T) {
	require.NoError(t, i18n.Setup("es"))

	msg, err := ClientConfirmation(context.Background(), sampleData())
	require.NoError(t, err)
	assert.Equal(t, []string{"lucia@example.com"}, msg.To)
	assert.Equal(t, "Hemos recibido tu mensaje - Centro Auditivo Sol", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Te contactaremos por WhatsApp.")
	assert.Contains(t, msg.HTMLBody, "llámanos al 910 000 000")

	en := i18n.WithTag(context.Background(), language.English)
	msg, err = ClientConfirmation(en, sampleData())
	require.NoError(t, err)
	assert.Equal(t, "We have received your message - Centro Auditivo Sol", msg.Subject)
	assert.Contains(t, msg.HTMLBody, `<html lang="en">`)
}
