package remote

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/milk9111/cinematic/cinematic"
	"github.com/sirupsen/logrus"
)

// maxInbox bounds the requests held between ticks. Older requests are
// dropped first.
const maxInbox = 64

// Status is published on the status topic for each lifecycle event.
type Status struct {
	Event string `json:"event"`
	Name  string `json:"name"`
}

// Bridge receives play requests from the network and hands them to the
// goroutine that owns the player.
type Bridge struct {
	transport   Transport
	playTopic   string
	statusTopic string
	log         logrus.FieldLogger

	mu    sync.Mutex
	inbox []string
}

func NewBridge(transport Transport, playTopic, statusTopic string, logger logrus.FieldLogger) *Bridge {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Bridge{
		transport:   transport,
		playTopic:   playTopic,
		statusTopic: statusTopic,
		log:         logger,
	}
}

// Start subscribes to the play topic. Each payload is either a stored
// sequence name or inline sequence JSON.
func (b *Bridge) Start() error {
	if b.playTopic == "" {
		return fmt.Errorf("remote: no play topic")
	}
	return b.transport.Subscribe(b.playTopic, b.receive)
}

func (b *Bridge) receive(topic string, payload []byte) {
	req := strings.TrimSpace(string(payload))
	if req == "" {
		return
	}
	b.log.WithField("topic", topic).Debug("play request received")

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.inbox) >= maxInbox {
		b.log.Warn("play request inbox full, dropping oldest")
		b.inbox = b.inbox[1:]
	}
	b.inbox = append(b.inbox, req)
}

// Pending returns how many requests wait for the next Drain.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.inbox)
}

// Drain passes queued requests to fn in arrival order and returns how
// many there were.
func (b *Bridge) Drain(fn func(request string)) int {
	b.mu.Lock()
	reqs := b.inbox
	b.inbox = nil
	b.mu.Unlock()

	for _, r := range reqs {
		fn(r)
	}
	return len(reqs)
}

// Notify publishes ev on the status topic. It fits cinematic.Listener;
// failures are logged.
func (b *Bridge) Notify(ev cinematic.Event) {
	if b.statusTopic == "" {
		return
	}
	payload, err := json.Marshal(Status{Event: ev.Kind.String(), Name: ev.Name})
	if err != nil {
		b.log.WithError(err).Error("encode status")
		return
	}
	if err := b.transport.Publish(b.statusTopic, payload); err != nil {
		b.log.WithError(err).Warn("publish status failed")
	}
}
