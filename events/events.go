// Package events publishes blog changes on NATS for whoever wants to follow them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blog-app/utils"

	"github.com/nats-io/nats.go"
)

const subjectPrefix = "blog."

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

type envelope struct {
	Subject   string `json:"subject"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

type NatsPublisher struct {
	conn Conn
	now  func() time.Time
}

func NewNatsPublisher(conn Conn) *NatsPublisher {
	return &NatsPublisher{conn: conn, now: time.Now}
}

// Connect dials NATS. The returned connection must be drained by the caller.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("blog-app"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				utils.LogError(err, "NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			utils.LogInfo("NATS reconnected to " + nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	utils.LogSuccess("NATS connected successfully")
	return nc, nil
}

func (p *NatsPublisher) Publish(_ context.Context, subject string, payload any) error {
	data, err := json.Marshal(envelope{
		Subject:   subject,
		Payload:   payload,
		Timestamp: p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return p.conn.Publish(subjectPrefix+subject, data)
}

// Nop drops every event. It stands in when NATS_URL is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
