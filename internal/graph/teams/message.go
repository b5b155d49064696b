package teams

import "time"

// Identity is a user or application reference in a message sender.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// MessageFrom identifies the sender of a message. Exactly one of User or
// Application is set for messages Graph attributes to a sender; both are nil
// for system events.
type MessageFrom struct {
	User        *Identity `json:"user"`
	Application *Identity `json:"application"`
}

// ItemBody is the content of a message. ContentType is "html" or "text".
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Message is a channel message or a reply within a thread.
type Message struct {
	ID                   string       `json:"id"`
	From                 *MessageFrom `json:"from"`
	CreatedDateTime      string       `json:"createdDateTime"`
	LastModifiedDateTime string       `json:"lastModifiedDateTime"`
	Body                 *ItemBody    `json:"body"`
}

// IsHuman reports whether the message was sent by a person rather than a
// bot, application or system event.
func (m *Message) IsHuman() bool {
	return m.From != nil && m.From.User != nil
}

// EffectiveTime returns the message's activity timestamp: last modified if
// present, else created. ok is false when neither parses.
func (m *Message) EffectiveTime() (ts time.Time, ok bool) {
	for _, raw := range []string{m.LastModifiedDateTime, m.CreatedDateTime} {
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BodyContent returns the raw message body, which may contain HTML markup.
func (m *Message) BodyContent() string {
	if m.Body == nil {
		return ""
	}
	return m.Body.Content
}
