package trigger

import (
	"context"
	"fmt"
	"path"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/maintdesk/maintenance-backend/internal/contracts"
	"github.com/maintdesk/maintenance-backend/internal/scheduler"
)

// DefaultTopicPrefix is the topic tree tick publishers use.
const DefaultTopicPrefix = "maintenance/ticks"

// Connect connects to the MQTT broker used for batch tick delivery.
func Connect(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return client, nil
}

// TickListener maps tick messages to batch passes: the topic suffix selects
// the operation ("scheduler" or "contracts"). Delivery is at-least-once;
// serializing ticks so passes do not overlap is the publisher's concern.
type TickListener struct {
	Client        mqtt.Client
	Scheduler     *scheduler.Engine
	Contracts     *contracts.Engine
	TopicPrefix   string
	ThresholdDays int
	Timeout       time.Duration
}

func (l *TickListener) topicPrefix() string {
	if l.TopicPrefix == "" {
		return DefaultTopicPrefix
	}
	return l.TopicPrefix
}

func (l *TickListener) timeout() time.Duration {
	if l.Timeout <= 0 {
		return 5 * time.Minute
	}
	return l.Timeout
}

// Subscribe starts listening for ticks under the topic prefix.
func (l *TickListener) Subscribe() error {
	token := l.Client.Subscribe(l.topicPrefix()+"/#", 1, l.HandleTick)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe: %w", token.Error())
	}
	log.WithField("topic", l.topicPrefix()+"/#").Info("listening for batch ticks")
	return nil
}

// HandleTick runs the batch pass selected by the tick's topic suffix.
func (l *TickListener) HandleTick(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout())
	defer cancel()

	switch path.Base(msg.Topic()) {
	case "scheduler":
		result, err := l.Scheduler.GenerateDueWorkOrders(ctx, time.Time{})
		if err != nil {
			log.WithError(err).Error("scheduler tick failed")
			return
		}
		log.WithFields(log.Fields{
			"generated": result.Generated,
			"failed":    result.Failed,
		}).Info("scheduler tick processed")
	case "contracts":
		result, err := l.Contracts.EvaluateStatuses(ctx, time.Time{}, l.ThresholdDays)
		if err != nil {
			log.WithError(err).Error("contract evaluation tick failed")
			return
		}
		log.WithFields(log.Fields{
			"updated":       result.Updated,
			"newly_expired": result.NewlyExpired,
		}).Info("contract evaluation tick processed")
	default:
		log.WithField("topic", msg.Topic()).Warn("unrecognized tick topic")
	}
}
