package models

import (
	"testing"
)

func TestParseTriggerCall(t *testing.T) {
	body := []byte(`{
		"PLASTIC_USER": "alice",
		"PLASTIC_CLIENTMACHINE": "ws01",
		"INPUT": ["file1.txt", "file2.txt"]
	}`)

	call, err := ParseTriggerCall(body, "after-checkin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if call.Type != "after-checkin" {
		t.Errorf("unexpected type: %s", call.Type)
	}
	if got := call.EnvironmentVars["PLASTIC_USER"]; got != "alice" {
		t.Errorf("unexpected PLASTIC_USER: %q", got)
	}
	if len(call.EnvironmentVars) != 2 {
		t.Errorf("unexpected var count: %d", len(call.EnvironmentVars))
	}
	if len(call.Input) != 2 || call.Input[0] != "file1.txt" || call.Input[1] != "file2.txt" {
		t.Errorf("unexpected input: %v", call.Input)
	}
}

func TestParseTriggerCallInputCaseInsensitive(t *testing.T) {
	call, err := ParseTriggerCall([]byte(`{"input": ["a"], "VAR": "x"}`), "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(call.Input) != 1 || call.Input[0] != "a" {
		t.Errorf("lowercase input key not recognized: %v", call.Input)
	}
	if _, ok := call.EnvironmentVars["input"]; ok {
		t.Error("input key leaked into environment vars")
	}
}

func TestParseTriggerCallErrors(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		triggerType string
	}{
		{"malformed json", `{"a": `, "t"},
		{"non-object body", `[1,2]`, "t"},
		{"null body", `null`, "t"},
		{"non-string variable", `{"N": 5}`, "t"},
		{"input not array", `{"INPUT": "x"}`, "t"},
		{"missing type", `{"A": "b"}`, "  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseTriggerCall([]byte(tc.body), tc.triggerType); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseTriggerCallEmptyInput(t *testing.T) {
	call, err := ParseTriggerCall([]byte(`{"VAR": "v"}`), "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(call.Input) != 0 {
		t.Errorf("expected empty input, got %v", call.Input)
	}
}
