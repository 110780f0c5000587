//go:build !tinygo

package hal

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// NodeIDLen is the width of the sender prefix on every link packet.
const NodeIDLen = 8

const mqttRecvSlots = 16

// MQTTConfig configures the simulated radio link.
type MQTTConfig struct {
	// Broker is an mqtt:// or tcp:// URL. Userinfo sets credentials.
	Broker string
	// Topic every node publishes to and subscribes on.
	Topic string
	// NodeID prefixes outgoing packets; packets carrying it are our own echo.
	NodeID  string
	Timeout time.Duration
	Log     zerolog.Logger
}

// mqttNetwork carries link packets over one shared MQTT topic, the way a
// broadcast radio channel behaves: every node hears every other node.
type mqttNetwork struct {
	client paho.Client
	topic  string
	node   [NodeIDLen]byte
	rx     chan []byte
	log    zerolog.Logger
}

// NewMQTTNetwork connects to the broker and subscribes to the link topic.
func NewMQTTNetwork(cfg MQTTConfig) (Network, error) {
	opts, topic, err := mqttClientOptions(cfg.Broker)
	if err != nil {
		return nil, err
	}
	if cfg.Topic == "" {
		cfg.Topic = topic
	}
	if cfg.Topic == "" {
		cfg.Topic = "neo/link"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	n := &mqttNetwork{
		topic: cfg.Topic,
		node:  nodePrefix(cfg.NodeID),
		rx:    make(chan []byte, mqttRecvSlots),
		log:   cfg.Log,
	}
	opts.SetClientID("neo-" + string(n.node[:]))
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		n.log.Warn().Err(err).Msg("mqtt connection lost")
	})
	opts.SetOnConnectHandler(func(c paho.Client) {
		tok := c.Subscribe(n.topic, 0, n.onMessage)
		if tok.WaitTimeout(cfg.Timeout) && tok.Error() != nil {
			n.log.Error().Err(tok.Error()).Str("topic", n.topic).Msg("mqtt subscribe")
		}
	})

	n.client = paho.NewClient(opts)
	tok := n.client.Connect()
	if !tok.WaitTimeout(cfg.Timeout) {
		return nil, fmt.Errorf("mqtt: connect %s: timeout", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect %s: %w", cfg.Broker, err)
	}
	n.log.Info().Str("broker", cfg.Broker).Str("topic", n.topic).Str("node", string(n.node[:])).Msg("link connected")
	return n, nil
}

func (n *mqttNetwork) onMessage(_ paho.Client, m paho.Message) {
	pkt, ok := n.accept(m.Payload())
	if !ok {
		return
	}
	select {
	case n.rx <- pkt:
	default:
		n.log.Debug().Msg("link rx overflow, packet dropped")
	}
}

// accept strips the sender prefix and rejects our own echo.
func (n *mqttNetwork) accept(payload []byte) ([]byte, bool) {
	if len(payload) <= NodeIDLen || len(payload) > NodeIDLen+MaxPacket {
		return nil, false
	}
	if bytes.Equal(payload[:NodeIDLen], n.node[:]) {
		return nil, false
	}
	pkt := make([]byte, len(payload)-NodeIDLen)
	copy(pkt, payload[NodeIDLen:])
	return pkt, true
}

func (n *mqttNetwork) frame(pkt []byte) []byte {
	out := make([]byte, 0, NodeIDLen+len(pkt))
	out = append(out, n.node[:]...)
	return append(out, pkt...)
}

func (n *mqttNetwork) Send(pkt []byte) error {
	if len(pkt) > MaxPacket {
		return fmt.Errorf("mqtt: packet of %d bytes exceeds %d", len(pkt), MaxPacket)
	}
	if !n.client.IsConnected() {
		return fmt.Errorf("mqtt: not connected")
	}
	// The scheduler loop must not wait on the broker; errors surface on the
	// connection-lost handler instead.
	n.client.Publish(n.topic, 0, false, n.frame(pkt))
	return nil
}

func (n *mqttNetwork) Recv(pkt []byte) (int, error) {
	select {
	case p := <-n.rx:
		return copy(pkt, p), nil
	default:
		return 0, nil
	}
}

func nodePrefix(id string) [NodeIDLen]byte {
	var out [NodeIDLen]byte
	for i := range out {
		out[i] = '0'
	}
	copy(out[:], id)
	return out
}

// mqttClientOptions builds client options from a broker URL. The URL path,
// if any, is the link topic.
func mqttClientOptions(broker string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(broker)
	if err != nil {
		return nil, "", fmt.Errorf("mqtt: broker url: %w", err)
	}
	if u.Host == "" {
		return nil, "", fmt.Errorf("mqtt: broker url %q has no host", broker)
	}
	scheme := u.Scheme
	if scheme == "" || scheme == "mqtt" {
		scheme = "tcp"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(scheme + "://" + u.Host).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	return opts, strings.TrimPrefix(u.Path, "/"), nil
}
