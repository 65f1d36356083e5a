package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"notify-center-api/models"
	"notify-center-api/notifiers"
	"notify-center-api/utils"
)

// NotifierService is the background worker draining the notification queue.
// Exactly one loop instance consumes the queue, so calls are processed in
// FIFO arrival order; within one call, rules and notifier channels fan out
// concurrently with no ordering guarantee.
type NotifierService struct {
	queue    *NotificationQueue
	eval     *RuleConditionEvaluator
	registry *notifiers.Registry

	rules          *RuleService
	triggerHistory *TriggerHistoryService
	notifyHistory  *NotificationHistoryService
	settings       *SettingsService

	wg sync.WaitGroup
}

func NewNotifierService(db *gorm.DB, queue *NotificationQueue, eval *RuleConditionEvaluator, registry *notifiers.Registry) *NotifierService {
	return &NotifierService{
		queue:          queue,
		eval:           eval,
		registry:       registry,
		rules:          NewRuleService(db),
		triggerHistory: NewTriggerHistoryService(db),
		notifyHistory:  NewNotificationHistoryService(db),
		settings:       NewSettingsService(db),
	}
}

// Start launches the dispatcher loop. Cancelling ctx stops the loop from
// taking new calls; the call being processed runs to completion. Use Wait
// to block until the loop has drained.
func (s *NotifierService) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Wait blocks until the dispatcher loop has stopped.
func (s *NotifierService) Wait() {
	s.wg.Wait()
}

func (s *NotifierService) run(ctx context.Context) {
	log.Println("Notification dispatcher started")
	for {
		call, err := s.queue.Dequeue(ctx)
		if err != nil {
			log.Println("Notification dispatcher stopped")
			return
		}
		s.process(call)
	}
}

// process handles one dequeued call. It is the fault boundary of the loop:
// whatever goes wrong here is logged with the call's trigger type and the
// loop moves on to the next call.
func (s *NotifierService) process(call *models.TriggerCall) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic while processing trigger %s: %v", call.Type, r)
		}
	}()

	log.Printf("Trigger fired: %s", call.Type)

	if err := s.triggerHistory.Record(call); err != nil {
		log.Printf("Failed to record trigger history for %s: %v", call.Type, err)
	}

	rules, err := s.rules.ActiveByTrigger(call.Type)
	if err != nil {
		log.Printf("Failed to load rules for trigger %s: %v", call.Type, err)
		return
	}

	passed := s.eval.EvalFilter(rules, call.EnvironmentVars, call.Input)

	var wg sync.WaitGroup
	for i := range passed {
		wg.Add(1)
		go func(rule *models.NotificationRule) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Panic while running rule %s: %v", rule.DisplayName, r)
				}
			}()
			s.runRule(rule, call)
		}(&passed[i])
	}
	wg.Wait()
}

// runRule renders the message for one passing rule, resolves its recipients
// and dispatches every attached notifier channel.
func (s *NotifierService) runRule(rule *models.NotificationRule, call *models.TriggerCall) {
	if len(rule.Notifiers) == 0 {
		log.Printf("Rule %s has no notifiers", rule.DisplayName)
		return
	}

	msg := s.renderMessage(rule, call)
	if strings.TrimSpace(msg.Body) == "" {
		log.Printf("The message body is empty for rule: %s", rule.DisplayName)
		return
	}

	recipients := resolveRecipients(rule)
	if len(recipients) == 0 {
		log.Printf("Rule %s resolved to zero recipients", rule.DisplayName)
		return
	}

	if rule.UseGlobalTemplate {
		msg = notifiers.ApplyGlobalTemplate(msg, s.rulesURL())
	}

	var wg sync.WaitGroup
	for i := range rule.Notifiers {
		wg.Add(1)
		go func(cfg *models.NotifierConfig) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Panic while dispatching notifier %s: %v", cfg.DisplayName, r)
				}
			}()
			s.dispatch(cfg, msg, recipients)
		}(&rule.Notifiers[i])
	}
	wg.Wait()
}

// dispatch sends the message through one channel and books the outcome.
func (s *NotifierService) dispatch(cfg *models.NotifierConfig, msg *notifiers.Message, recipients []models.User) {
	channel, ok := s.registry.Get(cfg.Type)
	if !ok {
		log.Printf("No notifier registered for channel type: %s", cfg.Type)
		return
	}

	entry, err := s.notifyHistory.Open(channel.Name())
	if err != nil {
		log.Printf("Failed to open notification history for %s: %v", channel.Name(), err)
	}

	success, failed := send(channel, cfg, msg, recipients)
	log.Printf("Notifier %s finished: %d sent, %d failed", cfg.DisplayName, success, failed)

	if entry != nil {
		if err := s.notifyHistory.Close(entry, success, failed); err != nil {
			log.Printf("Failed to close notification history for %s: %v", channel.Name(), err)
		}
	}
}

// send calls the channel implementation. Channels are an extension point, so
// a panic inside one must not take the dispatcher down; it counts every
// recipient as failed and the history entry still gets closed.
func send(channel notifiers.Notifier, cfg *models.NotifierConfig, msg *notifiers.Message, recipients []models.User) (success, failed int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in notifier channel %s: %v", cfg.DisplayName, r)
			success, failed = 0, len(recipients)
		}
	}()
	return channel.Send(context.Background(), cfg, msg, recipients)
}

// renderMessage substitutes the call's environment variables into the
// rule's templates. Rendering depends only on the templates and the vars.
func (s *NotifierService) renderMessage(rule *models.NotificationRule, call *models.TriggerCall) *notifiers.Message {
	tags := []string{}
	for _, tag := range strings.Split(utils.ReplaceVars(rule.NotificationTags, call.EnvironmentVars), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return &notifiers.Message{
		Title: utils.ReplaceVars(rule.NotificationTitle, call.EnvironmentVars),
		Body:  utils.ReplaceVars(rule.NotificationBody, call.EnvironmentVars),
		Tags:  tags,
		HTML:  rule.BodyType == models.BodyTypeHTML,
	}
}

func (s *NotifierService) rulesURL() string {
	setting, err := s.settings.Get()
	if err != nil || setting.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(setting.BaseURL, "/") + "/Rules"
}

// resolveRecipients expands a rule's recipient list into the deduplicated
// set of active users: every directly referenced user plus every member of
// every referenced role that is not soft-deleted. A user reachable through
// several entries appears exactly once.
func resolveRecipients(rule *models.NotificationRule) []models.User {
	seen := make(map[uint]struct{})
	var users []models.User

	add := func(u *models.User) {
		if u == nil || !u.IsActive() {
			return
		}
		if _, ok := seen[u.UserID]; ok {
			return
		}
		seen[u.UserID] = struct{}{}
		users = append(users, *u)
	}

	for i := range rule.Recipients {
		recipient := &rule.Recipients[i]
		switch {
		case recipient.User != nil:
			add(recipient.User)
		case recipient.Role != nil:
			if recipient.Role.IsDeleted() {
				continue
			}
			for j := range recipient.Role.Users {
				add(&recipient.Role.Users[j])
			}
		default:
			log.Printf("Rule %s has a recipient with neither user nor role", rule.DisplayName)
		}
	}

	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users
}
