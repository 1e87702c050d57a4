package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Command is the payload published to a user's notification topic.
type Command struct {
	Type    string  `json:"type"` // "schedule", "cancel", "cancel_all"
	AlertID string  `json:"alert_id,omitempty"`
	Alerts  []Alert `json:"alerts,omitempty"`
	SentAt  int64   `json:"timestamp"`
}

// MQTTNotifier publishes commands to salah/<user>/notifications. Devices
// subscribe to their user's topic and own the actual local scheduling.
type MQTTNotifier struct {
	client  mqtt.Client
	qos     byte
	timeout time.Duration
}

var _ Notifier = (*MQTTNotifier)(nil)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// NewMQTTNotifier connects to brokerURL with the given client id.
func NewMQTTNotifier(brokerURL, clientID string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return NewMQTTNotifierWithClient(client), nil
}

func NewMQTTNotifierWithClient(client mqtt.Client) *MQTTNotifier {
	return &MQTTNotifier{client: client, qos: 1, timeout: 5 * time.Second}
}

func Topic(userID uuid.UUID) string {
	return fmt.Sprintf("salah/%s/notifications", userID)
}

func (n *MQTTNotifier) Schedule(ctx context.Context, userID uuid.UUID, alerts []Alert) error {
	return n.publish(ctx, userID, Command{Type: "schedule", Alerts: alerts})
}

func (n *MQTTNotifier) Cancel(ctx context.Context, userID uuid.UUID, alertID string) error {
	return n.publish(ctx, userID, Command{Type: "cancel", AlertID: alertID})
}

func (n *MQTTNotifier) CancelAll(ctx context.Context, userID uuid.UUID) error {
	return n.publish(ctx, userID, Command{Type: "cancel_all"})
}

func (n *MQTTNotifier) publish(ctx context.Context, userID uuid.UUID, cmd Command) error {
	cmd.SentAt = time.Now().Unix()
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode %s command: %w", cmd.Type, err)
	}

	topic := Topic(userID)
	token := n.client.Publish(topic, n.qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(n.timeout):
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Str("type", cmd.Type).Msg("notification command sent")
	return nil
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
