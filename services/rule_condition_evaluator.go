package services

import (
	"fmt"
	"log"
	"time"

	"github.com/expr-lang/expr"

	"notify-center-api/models"
)

// DefaultFilterTimeout bounds the evaluation of a single rule filter.
const DefaultFilterTimeout = 20 * time.Second

// RuleConditionEvaluator decides which rules pass their advanced filter for
// a given trigger call. Filters are boolean expressions over two read-only
// globals: EnvVars (the call's environment variables) and Input (the call's
// input lines). A rule without a filter always passes. Any compile error,
// runtime error, timeout or non-boolean result excludes the rule; the
// evaluator never panics and never returns an error to the caller.
type RuleConditionEvaluator struct {
	timeout time.Duration
}

func NewRuleConditionEvaluator() *RuleConditionEvaluator {
	return &RuleConditionEvaluator{timeout: DefaultFilterTimeout}
}

// NewRuleConditionEvaluatorWithTimeout is used by tests to shorten the bound.
func NewRuleConditionEvaluatorWithTimeout(timeout time.Duration) *RuleConditionEvaluator {
	return &RuleConditionEvaluator{timeout: timeout}
}

// EvalFilter returns the subset of rules whose filter passes, preserving the
// input order. Rules are expected to be pre-filtered to the right trigger
// type and IsActive.
func (e *RuleConditionEvaluator) EvalFilter(rules []models.NotificationRule, envVars map[string]string, input []string) []models.NotificationRule {
	passed := make([]models.NotificationRule, 0, len(rules))
	for _, rule := range rules {
		if rule.AdvancedFilter == "" {
			passed = append(passed, rule)
			continue
		}
		if e.evalFilter(rule.AdvancedFilter, envVars, input) {
			passed = append(passed, rule)
		}
	}
	return passed
}

func (e *RuleConditionEvaluator) evalFilter(code string, envVars map[string]string, input []string) bool {
	result, err := e.runFilter(code, envVars, input)
	if err != nil {
		log.Printf("Error while evaluating filter %q: %v", code, err)
		return false
	}
	state, ok := result.(bool)
	if !ok {
		log.Printf("Filter %q evaluated to non-boolean %T", code, result)
		return false
	}
	return state
}

// runFilter compiles and runs one filter expression, bounded by the
// evaluator's timeout. The expression language has no IO or side effects;
// on timeout the result is simply discarded.
func (e *RuleConditionEvaluator) runFilter(code string, envVars map[string]string, input []string) (result any, err error) {
	if envVars == nil {
		envVars = map[string]string{}
	}
	if input == nil {
		input = []string{}
	}
	env := map[string]any{
		"EnvVars": envVars,
		"Input":   input,
	}

	program, err := expr.Compile(code, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	type evalResult struct {
		value any
		err   error
	}
	done := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- evalResult{err: fmt.Errorf("filter panicked: %v", r)}
			}
		}()
		value, runErr := expr.Run(program, env)
		done <- evalResult{value: value, err: runErr}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("run filter: %w", res.err)
		}
		return res.value, nil
	case <-time.After(e.timeout):
		return nil, fmt.Errorf("filter timed out after %s", e.timeout)
	}
}
