// Package remote lets other processes start cinematic sequences over MQTT
// and follow their progress.
package remote

import (
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 5 * time.Second

// Handler receives a message delivered on a subscribed topic.
type Handler func(topic string, payload []byte)

// Transport is a publish/subscribe connection.
type Transport interface {
	Publish(topic string, payload []byte) error
	Subscribe(topic string, handler Handler) error
	Close()
}

// Config describes the broker connection and the topics the bridge uses.
type Config struct {
	URL         string        `yaml:"url"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	ClientID    string        `yaml:"clientId"`
	PlayTopic   string        `yaml:"playTopic"`
	StatusTopic string        `yaml:"statusTopic"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Enabled reports whether a broker is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// PahoTransport is a Transport over a paho MQTT client. Subscriptions are
// restored whenever the client reconnects.
type PahoTransport struct {
	client  mqtt.Client
	timeout time.Duration

	mu   sync.Mutex
	subs map[string]Handler
}

func NewPahoTransport(client mqtt.Client, timeout time.Duration) *PahoTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PahoTransport{client: client, timeout: timeout, subs: make(map[string]Handler)}
}

// Dial connects to the broker in cfg.
func Dial(cfg Config, logger logrus.FieldLogger) (*PahoTransport, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "cinematic"
	}

	var t *PahoTransport
	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(clientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(mqtt.Client) {
			logger.WithField("broker", cfg.URL).Info("mqtt connected")
			t.resubscribe(logger)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.WithError(err).Warn("mqtt connection lost")
		})
	t = NewPahoTransport(mqtt.NewClient(options), cfg.Timeout)

	token := t.client.Connect()
	if !token.WaitTimeout(t.timeout) {
		t.client.Disconnect(250)
		return nil, fmt.Errorf("remote: connect %s: timed out", cfg.URL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("remote: connect %s: %w", cfg.URL, err)
	}
	return t, nil
}

func (t *PahoTransport) Publish(topic string, payload []byte) error {
	token := t.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(t.timeout) {
		return fmt.Errorf("remote: publish %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("remote: publish %s: %w", topic, err)
	}
	return nil
}

func (t *PahoTransport) Subscribe(topic string, handler Handler) error {
	t.mu.Lock()
	t.subs[topic] = handler
	t.mu.Unlock()
	return t.subscribe(topic, handler)
}

func (t *PahoTransport) subscribe(topic string, handler Handler) error {
	token := t.client.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(t.timeout) {
		return fmt.Errorf("remote: subscribe %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("remote: subscribe %s: %w", topic, err)
	}
	return nil
}

// resubscribe runs on paho's connect callback. It must not wait on tokens
// there, so it subscribes from its own goroutine.
func (t *PahoTransport) resubscribe(logger logrus.FieldLogger) {
	if t == nil {
		return
	}
	t.mu.Lock()
	subs := make(map[string]Handler, len(t.subs))
	for topic, h := range t.subs {
		subs[topic] = h
	}
	t.mu.Unlock()

	go func() {
		for topic, h := range subs {
			if err := t.subscribe(topic, h); err != nil {
				logger.WithError(err).Warn("mqtt resubscribe failed")
			}
		}
	}()
}

func (t *PahoTransport) Close() {
	t.client.Disconnect(250)
}
