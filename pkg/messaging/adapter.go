package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

type BrokerAdapter struct {
	broker Broker
}

func NewBrokerAdapter(broker Broker) MessageBroker {
	return &BrokerAdapter{broker: broker}
}

// Publish forwards payload as raw JSON so the broker does not re-encode it as a string.
func (a *BrokerAdapter) Publish(ctx context.Context, topic string, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("payload for %s is not valid JSON", topic)
	}
	return a.broker.Publish(ctx, topic, json.RawMessage(payload))
}

func (a *BrokerAdapter) Close() error {
	return a.broker.Close()
}

// Subscribe runs handler for every message until ctx is done. Handler errors are logged and
// the message is dropped.
func (a *BrokerAdapter) Subscribe(ctx context.Context, topic string, handler func([]byte) error) error {
	msgChan, err := a.broker.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgChan {
			if err := handler(msg); err != nil {
				log.Error().Err(err).Str("topic", topic).Msg("message handler failed")
			}
		}
	}()

	return nil
}
