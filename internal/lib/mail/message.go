// Package mail собирает письма в формате RFC 5322 / MIME: текст в UTF-8
// и, при необходимости, вложения в multipart/mixed.
package mail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoRecipients возвращается, если у письма нет получателей.
var ErrNoRecipients = errors.New("message has no recipients")

// Attachment файл, прикладываемый к письму.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message письмо с текстовым телом и необязательными вложениями.
type Message struct {
	From        mail.Address
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
	Date        time.Time
}

// Bytes кодирует письмо для передачи в SMTP DATA.
func (m *Message) Bytes() ([]byte, error) {
	const op = "mail.Message.Bytes"
	if len(m.To) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoRecipients)
	}

	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}

	var buf bytes.Buffer
	writeHeader(&buf, "From", m.From.String())
	writeHeader(&buf, "To", strings.Join(m.To, ", "))
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	writeHeader(&buf, "Date", date.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", messageID(m.From.Address))
	writeHeader(&buf, "MIME-Version", "1.0")

	if len(m.Attachments) == 0 {
		writeHeader(&buf, "Content-Type", `text/plain; charset="UTF-8"`)
		writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
		buf.WriteString("\r\n")
		if err := writeQuotedPrintable(&buf, m.Body); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	writeHeader(&buf, "Content-Type", `multipart/mixed; boundary="`+mw.Boundary()+`"`)
	buf.WriteString("\r\n")

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/plain; charset="UTF-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = writeQuotedPrintable(textPart, m.Body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, a := range m.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mime.FormatMediaType(contentType, map[string]string{"name": a.Filename})},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = writeBase64Lines(part, a.Data); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = mw.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	// значения полей формы не должны добавлять свои заголовки
	value = strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
	buf.WriteString(key + ": " + value + "\r\n")
}

func messageID(from string) string {
	domain := "localhost"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = from[i+1:]
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}

func writeQuotedPrintable(w io.Writer, body string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}

// writeBase64Lines пишет данные в base64 строками по 76 символов (RFC 2045).
func writeBase64Lines(w io.Writer, data []byte) error {
	const lineLen = 76
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := lineLen
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
