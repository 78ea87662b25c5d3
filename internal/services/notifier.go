package services

import (
	"encoding/json"
	"net/http"

	"envy/internal/store"
	"envy/internal/utils"

	"github.com/olahol/melody"
)

// ChangeEvent is what websocket clients receive after every store mutation.
type ChangeEvent struct {
	Kind string `json:"kind"`
	ID   string `json:"id,omitempty"`
}

// Notifier fans store changes out to connected websocket clients so open pages can refetch.
type Notifier struct {
	M *melody.Melody
}

func NewNotifier(m *melody.Melody) *Notifier {
	if m == nil {
		m = melody.New()
	}
	return &Notifier{M: m}
}

// Attach subscribes to s and returns the unsubscribe func.
func (n *Notifier) Attach(s *store.Store) func() {
	return s.Subscribe(n.Publish)
}

func (n *Notifier) Publish(c store.Change) {
	msg, err := json.Marshal(ChangeEvent{Kind: string(c.Kind), ID: c.ID})
	if err != nil {
		utils.LogEvent("", "notifier", "publish", err.Error())
		return
	}
	if err := n.M.Broadcast(msg); err != nil {
		utils.LogEvent("", "notifier", "publish", err.Error())
	}
}

// ServeHTTP upgrades the request to a websocket subscription.
func (n *Notifier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := n.M.HandleRequest(w, r); err != nil {
		utils.LogEvent("", "notifier", "connect", err.Error())
	}
}

// Close disconnects every client.
func (n *Notifier) Close() error {
	return n.M.Close()
}
