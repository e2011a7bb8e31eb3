package mqttremote

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gramofon/gramofon/internal/adapters/mqttconn"
)

// Handler turns one request payload into one reply payload.
type Handler interface {
	ProcessBytes(payload []byte) []byte
}

// Config configures the MQTT transport topics.
type Config struct {
	CommandTopic string
	ReplyTopic   string
}

// Module bridges an MQTT broker to the command processor: every message on
// the command topic produces exactly one message on the reply topic.
type Module struct {
	log     *zap.Logger
	conn    *mqttconn.Client
	handler Handler
	config  Config
}

// NewModule creates the MQTT transport over an established connection.
func NewModule(log *zap.Logger, conn *mqttconn.Client, handler Handler, cfg Config) *Module {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(cfg.CommandTopic) == "" {
		cfg.CommandTopic = "gramofon/command"
	}
	if strings.TrimSpace(cfg.ReplyTopic) == "" {
		cfg.ReplyTopic = "gramofon/reply"
	}
	return &Module{log: log, conn: conn, handler: handler, config: cfg}
}

// Run subscribes and serves until the context is cancelled.
func (m *Module) Run(ctx context.Context) error {
	err := m.conn.Subscribe(m.config.CommandTopic, 1, func(_ string, payload []byte) {
		reply := m.handler.ProcessBytes(payload)
		if err := m.conn.Publish(m.config.ReplyTopic, 1, false, reply); err != nil {
			m.log.Warn("publish reply failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	m.log.Info("mqtt transport listening",
		zap.String("command_topic", m.config.CommandTopic),
		zap.String("reply_topic", m.config.ReplyTopic))

	<-ctx.Done()
	if err := m.conn.Unsubscribe(m.config.CommandTopic); err != nil {
		m.log.Debug("unsubscribe failed", zap.Error(err))
	}
	return nil
}
