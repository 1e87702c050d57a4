package notify

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMQTTNotifierPublishesCommands(t *testing.T) {
	broker := os.Getenv("TEST_MQTT_BROKER_URL")
	if broker == "" {
		t.Skip("TEST_MQTT_BROKER_URL not set, skipping MQTT test")
	}

	n, err := NewMQTTNotifier(broker, "salah-test-"+uuid.NewString())
	require.NoError(t, err)
	defer n.Close()

	user := uuid.New()
	received := make(chan Command, 1)
	token := n.client.Subscribe(Topic(user), 1, func(_ mqtt.Client, msg mqtt.Message) {
		var cmd Command
		if json.Unmarshal(msg.Payload(), &cmd) == nil {
			received <- cmd
		}
	})
	require.True(t, token.WaitTimeout(5*time.Second))
	require.NoError(t, token.Error())

	require.NoError(t, n.Cancel(context.Background(), user, ReminderAlertID("1")))

	select {
	case cmd := <-received:
		assert.Equal(t, "cancel", cmd.Type)
		assert.Equal(t, "1_reminder", cmd.AlertID)
	case <-time.After(5 * time.Second):
		t.Fatal("no command received")
	}
}
