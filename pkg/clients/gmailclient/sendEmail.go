package gmailclient

import (
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

// EMAIL_INTERVAL is the minimum time between sends, keeping us well
// under Gmail's per-user rate limits during subscriber fan-out
const EMAIL_INTERVAL = 3 * time.Second

// SendEmail sends a multipart email with plain text and HTML alternatives.
// Sends are throttled so that broadcast loops pace themselves.
func (c *Client) SendEmail(to, subject, textBody, htmlBody string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	elapsed := time.Since(c.lastSendTime)
	if elapsed < EMAIL_INTERVAL {
		time.Sleep(EMAIL_INTERVAL - elapsed)
	}

	raw, err := buildMIMEMessage(c.sender, to, subject, textBody, htmlBody)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}

	_, err = c.service.Users.Messages.Send(c.userID, message).Do()
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	c.lastSendTime = time.Now()

	return nil
}

// buildMIMEMessage assembles a multipart/alternative message so that
// clients without HTML support still get a readable body
func buildMIMEMessage(from, to, subject, textBody, htmlBody string) ([]byte, error) {
	var buf strings.Builder
	var body strings.Builder
	writer := multipart.NewWriter(&body)

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=\"UTF-8\""},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text part: %w", err)
	}
	if _, err := textPart.Write([]byte(textBody)); err != nil {
		return nil, fmt.Errorf("failed to write text part: %w", err)
	}

	if htmlBody != "" {
		htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type": {"text/html; charset=\"UTF-8\""},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create html part: %w", err)
		}
		if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
			return nil, fmt.Errorf("failed to write html part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalise message body: %w", err)
	}

	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", writer.Boundary()))
	buf.WriteString("\r\n")
	buf.WriteString(body.String())

	return []byte(buf.String()), nil
}
