package mail

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessage() *Message {
	return &Message{
		From:    mail.Address{Name: "Nutriêde Website", Address: "site@nutriede.com.br"},
		To:      []string{"nutriede@nutriede.com.br"},
		Subject: "Novo Pedido de Orçamento - ACME",
		Body:    "Nome: João\nEmpresa: ACME",
		Date:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestMessage_PlainText(t *testing.T) {
	raw, err := newMessage().Bytes()
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Novo Pedido de Orçamento - ACME", subject)

	from, err := msg.Header.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "Nutriêde Website", from[0].Name)
	assert.Equal(t, "site@nutriede.com.br", from[0].Address)

	assert.Equal(t, "nutriede@nutriede.com.br", msg.Header.Get("To"))
	assert.True(t, strings.HasSuffix(msg.Header.Get("Message-ID"), "@nutriede.com.br>"))

	body, err := io.ReadAll(quotedprintable.NewReader(msg.Body))
	require.NoError(t, err)
	assert.Equal(t, "Nome: João\nEmpresa: ACME", strings.ReplaceAll(string(body), "\r\n", "\n"))
}

func TestMessage_WithAttachment(t *testing.T) {
	m := newMessage()
	data := bytes.Repeat([]byte("curriculo-"), 50)
	m.Attachments = []Attachment{{Filename: "cv_joao.pdf", ContentType: "application/pdf", Data: data}}

	raw, err := m.Bytes()
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	textPart, err := mr.NextPart()
	require.NoError(t, err)
	// multipart.Reader сам снимает quoted-printable
	text, err := io.ReadAll(textPart)
	require.NoError(t, err)
	assert.Equal(t, m.Body, strings.ReplaceAll(string(text), "\r\n", "\n"))

	filePart, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "cv_joao.pdf", filePart.FileName())
	encoded, err := io.ReadAll(filePart)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(string(encoded)), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestMessage_NoRecipients(t *testing.T) {
	m := newMessage()
	m.To = nil

	_, err := m.Bytes()
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestMessage_HeaderInjectionIsFlattened(t *testing.T) {
	m := newMessage()
	m.To = []string{"nutriede@nutriede.com.br\r\nBcc: victim@example.com"}

	raw, err := m.Bytes()
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Empty(t, msg.Header.Get("Bcc"))
}
