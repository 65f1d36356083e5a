package notifiers

import (
	"strings"
	"testing"
)

func TestApplyGlobalTemplate(t *testing.T) {
	msg := &Message{
		Title: "Checkin by alice",
		Body:  "<p>2 files changed</p>",
		Tags:  []string{"scm", "checkin"},
	}

	wrapped := ApplyGlobalTemplate(msg, "https://notify.example.com/Rules")

	if !wrapped.HTML {
		t.Error("templated message must be HTML")
	}
	if wrapped.Title != msg.Title {
		t.Errorf("title changed: %q", wrapped.Title)
	}
	for _, want := range []string{
		"Checkin by alice",
		"<p>2 files changed</p>",
		"scm, checkin",
		"https://notify.example.com/Rules",
	} {
		if !strings.Contains(wrapped.Body, want) {
			t.Errorf("template body missing %q", want)
		}
	}
	if strings.Contains(wrapped.Body, "%PNC_") {
		t.Errorf("unfilled slots remain: %q", wrapped.Body)
	}
}

func TestMessageString(t *testing.T) {
	msg := &Message{Title: "Title", Body: "Body", Tags: []string{"a", "b"}}
	got := msg.String()
	if !strings.Contains(got, "Title") || !strings.Contains(got, "Body") || !strings.Contains(got, "[a], [b]") {
		t.Errorf("unexpected string form: %q", got)
	}

	empty := &Message{}
	if empty.String() != "" {
		t.Errorf("empty message should stringify empty, got %q", empty.String())
	}
}
