package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TriggerCall represents one invocation of a source-control trigger.
// It is built once from the webhook payload and never mutated afterwards.
type TriggerCall struct {
	// Type is the trigger name, e.g. "after-checkin"
	Type string

	// EnvironmentVars holds all variables Plastic SCM sent with the trigger
	EnvironmentVars map[string]string

	// Input is the input content of the trigger (a file list for most triggers)
	Input []string
}

// ParseTriggerCall parses the JSON body of a trigger call.
//
// The body must be a JSON object. The reserved key "INPUT" (matched
// case-insensitively) must hold an array whose elements become Input lines;
// every other key must hold a string value and becomes an environment
// variable. Duplicate keys follow encoding/json semantics (last one wins).
func ParseTriggerCall(data []byte, triggerType string) (*TriggerCall, error) {
	if strings.TrimSpace(triggerType) == "" {
		return nil, fmt.Errorf("trigger type is required")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse trigger payload: %w", err)
	}
	// "null" unmarshals into a nil map without error but is not an object.
	if raw == nil {
		return nil, fmt.Errorf("trigger payload must be a JSON object")
	}

	call := &TriggerCall{
		Type:            triggerType,
		EnvironmentVars: make(map[string]string, len(raw)),
	}

	for key, value := range raw {
		if strings.EqualFold(key, "INPUT") {
			var lines []json.RawMessage
			if err := json.Unmarshal(value, &lines); err != nil {
				return nil, fmt.Errorf("INPUT must be an array: %w", err)
			}
			call.Input = make([]string, len(lines))
			for i, line := range lines {
				var s string
				if err := json.Unmarshal(line, &s); err != nil {
					// Non-string array elements keep their JSON text,
					// same as the stringified form the triggers emit.
					s = string(line)
				}
				call.Input[i] = s
			}
			continue
		}

		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("variable %q must be a string value", key)
		}
		call.EnvironmentVars[key] = s
	}

	return call, nil
}
