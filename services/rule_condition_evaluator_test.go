package services

import (
	"testing"
	"time"

	"notify-center-api/models"
)

func rulesWithFilters(filters ...string) []models.NotificationRule {
	rules := make([]models.NotificationRule, len(filters))
	for i, f := range filters {
		rules[i] = models.NotificationRule{
			ID:             string(rune('a' + i)),
			DisplayName:    "rule-" + string(rune('a'+i)),
			AdvancedFilter: f,
		}
	}
	return rules
}

func TestEvalFilterNoFilterAlwaysPasses(t *testing.T) {
	eval := NewRuleConditionEvaluator()
	passed := eval.EvalFilter(rulesWithFilters(""), map[string]string{"X": "y"}, nil)
	if len(passed) != 1 {
		t.Fatalf("filterless rule did not pass: %d", len(passed))
	}
}

func TestEvalFilterExpressions(t *testing.T) {
	eval := NewRuleConditionEvaluator()
	envVars := map[string]string{
		"PLASTIC_USER":   "alice",
		"PLASTIC_BRANCH": "/main/task001",
	}
	input := []string{"src/main.go", "README.md"}

	cases := []struct {
		name   string
		filter string
		want   bool
	}{
		{"literal true", "true", true},
		{"literal false", "false", false},
		{"env comparison", `EnvVars["PLASTIC_USER"] == "alice"`, true},
		{"env mismatch", `EnvVars["PLASTIC_USER"] == "bob"`, false},
		{"string ops", `EnvVars["PLASTIC_BRANCH"] startsWith "/main"`, true},
		{"input access", `len(Input) == 2`, true},
		{"input contains", `"README.md" in Input`, true},
		{"boolean logic", `EnvVars["PLASTIC_USER"] == "alice" && len(Input) > 0`, true},
		{"non-boolean result", `1 + 1`, false},
		{"unknown variable", `NoSuchVar == 1`, false},
		{"syntax error", `this is not an expression ((`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			passed := eval.EvalFilter(rulesWithFilters(tc.filter), envVars, input)
			if got := len(passed) == 1; got != tc.want {
				t.Errorf("filter %q: got pass=%v, want %v", tc.filter, got, tc.want)
			}
		})
	}
}

func TestEvalFilterPreservesOrder(t *testing.T) {
	eval := NewRuleConditionEvaluator()
	rules := rulesWithFilters("true", "false", "", "true")

	passed := eval.EvalFilter(rules, nil, nil)
	if len(passed) != 3 {
		t.Fatalf("unexpected pass count: %d", len(passed))
	}
	if passed[0].ID != rules[0].ID || passed[1].ID != rules[2].ID || passed[2].ID != rules[3].ID {
		t.Errorf("order not preserved: %v", []string{passed[0].ID, passed[1].ID, passed[2].ID})
	}
}

func TestEvalFilterNilInputs(t *testing.T) {
	eval := NewRuleConditionEvaluator()
	passed := eval.EvalFilter(rulesWithFilters(`len(Input) == 0 && len(EnvVars) == 0`), nil, nil)
	if len(passed) != 1 {
		t.Fatal("nil env/input should evaluate as empty collections")
	}
}

func TestEvalFilterTimeout(t *testing.T) {
	// The expression walks a large range, which takes far longer than the
	// nanosecond deadline; the rule must fail closed.
	eval := NewRuleConditionEvaluatorWithTimeout(time.Nanosecond)
	slow := `len(filter(1..1000000, {# % 2 == 0})) >= 0`
	passed := eval.EvalFilter(rulesWithFilters(slow), nil, nil)
	if len(passed) != 0 {
		t.Fatal("timed out filter must not pass")
	}
}
