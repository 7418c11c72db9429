// Package publish pushes every calculation to an MQTT topic so cockpit
// displays can follow along.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-calculator/api/model"
)

const timeout = 5 * time.Second

var ErrTimeout = errors.New("mqtt publish timed out")

type Mqtt struct {
	client mqtt.Client
	topic  string
}

func Connect(broker string, clientID string, topic string) (*Mqtt, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("MQTT connection lost")
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to %s: %w", broker, token.Error())
	}
	log.Infof("Connected to MQTT broker at %s", broker)

	return New(client, topic), nil
}

func New(client mqtt.Client, topic string) *Mqtt {
	return &Mqtt{client: client, topic: topic}
}

func (p *Mqtt) Publish(c model.Calculation) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(timeout) {
		return ErrTimeout
	}
	return token.Error()
}

func (p *Mqtt) Close() {
	p.client.Disconnect(250)
}
