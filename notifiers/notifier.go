package notifiers

import (
	"context"
	"sort"
	"sync"

	"notify-center-api/models"
)

// Notifier is a pluggable delivery channel. Send fans out one independent
// attempt per recipient and reports how many succeeded and how many failed.
// Implementations never return an error: a channel that cannot start at all
// reports every recipient as failed.
type Notifier interface {
	// Type is the channel identifier stored in NotifierConfig.Type.
	Type() string

	// Name is the display name recorded in notification history.
	Name() string

	Send(ctx context.Context, cfg *models.NotifierConfig, msg *Message, recipients []models.User) (success, failed int)
}

// Info describes a registered channel type for listings.
type Info struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Registry maps channel type identifiers to implementations. It is
// populated by explicit Register calls at startup; there is no runtime
// discovery.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]Notifier
	icons    map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]Notifier),
		icons:    make(map[string]string),
	}
}

// Register adds a channel implementation under its type identifier.
// Registering the same type twice replaces the earlier implementation.
func (r *Registry) Register(n Notifier, icon string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[n.Type()] = n
	r.icons[n.Type()] = icon
}

// Get returns the implementation for a channel type.
func (r *Registry) Get(channelType string) (Notifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.channels[channelType]
	return n, ok
}

// List returns metadata about all registered channel types.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]Info, 0, len(r.channels))
	for channelType, n := range r.channels {
		infos = append(infos, Info{
			Type: channelType,
			Name: n.Name(),
			Icon: r.icons[channelType],
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
	return infos
}
