package notifiers

import (
	"fmt"
	"strings"
)

// Message is one rendered notification, ready for delivery.
type Message struct {
	Title string
	Body  string
	Tags  []string

	// HTML marks the body as text/html instead of plain text.
	HTML bool
}

// String combines all message fields to a single string, used for logging.
func (m *Message) String() string {
	var sb strings.Builder
	if strings.TrimSpace(m.Title) != "" {
		sb.WriteString(m.Title)
		sb.WriteString("\n")
	}
	if strings.TrimSpace(m.Body) != "" {
		sb.WriteString(m.Body)
		sb.WriteString("\n")
	}
	if len(m.Tags) > 0 {
		tags := make([]string, len(m.Tags))
		for i, tag := range m.Tags {
			tags[i] = fmt.Sprintf("[%s]", tag)
		}
		sb.WriteString(strings.Join(tags, ", "))
	}
	return sb.String()
}
