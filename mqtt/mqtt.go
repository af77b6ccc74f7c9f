// Package mqtt publishes pin observations to an MQTT broker.
package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Client wraps the MQTT client. A Client built without a host is disabled and
// all its methods are no-ops.
type Client struct {
	client  paho.Client
	enabled bool
	status  string
	log     zerolog.Logger
}

// Config holds MQTT connection settings.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	CACert     string `yaml:"ca_cert"`
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
}

// New creates a client. statusTopic receives "online" on connect and
// "offline" as last will.
func New(cfg Config, clientID, statusTopic string, log zerolog.Logger) (*Client, error) {
	c := &Client{
		status: statusTopic,
		log:    log.With().Str("component", "mqtt").Logger(),
	}

	if cfg.Host == "" {
		c.log.Info().Msg("MQTT disabled (no host configured)")
		return c, nil
	}
	c.enabled = true

	broker, tlsConfig, err := brokerURL(cfg)
	if err != nil {
		return nil, err
	}
	if tlsConfig == nil {
		c.log.Info().Msg("MQTT using non-TLS connection")
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetKeepAlive(60*time.Second).
		SetWill(statusTopic, "offline", 1, true).
		SetConnectionLostHandler(c.handleConnectionLost).
		SetOnConnectHandler(c.handleConnect)

	if tlsConfig != nil {
		opts.SetTLSConfig(tlsConfig)
	}

	c.client = paho.NewClient(opts)

	paho.ERROR = pahoLogger{c.log, zerolog.ErrorLevel}
	paho.CRITICAL = pahoLogger{c.log, zerolog.ErrorLevel}
	paho.WARN = pahoLogger{c.log, zerolog.WarnLevel}

	return c, nil
}

// brokerURL picks ssl:// when any certificate is configured.
func brokerURL(cfg Config) (string, *tls.Config, error) {
	if cfg.CACert != "" || cfg.ClientCert != "" {
		if cfg.Port == 0 {
			cfg.Port = 8883
		}
		tlsConfig, err := buildTLSConfig(cfg)
		if err != nil {
			return "", nil, errors.Wrap(err, "build TLS config")
		}
		return fmt.Sprintf("ssl://%s:%d", cfg.Host, cfg.Port), tlsConfig, nil
	}
	if cfg.Port == 0 {
		cfg.Port = 1883
	}
	return fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port), nil, nil
}

func buildTLSConfig(cfg Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	if cfg.CACert != "" {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, errors.Wrap(err, "read CA cert")
		}
		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, errors.Errorf("no certificates in %s", cfg.CACert)
		}
		tlsConfig.RootCAs = caPool
	}

	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, errors.Wrap(err, "load client cert")
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// Connect connects to the broker, retrying until it succeeds or ctx is done.
// Messages published before the connection is up are queued by paho.
func (c *Client) Connect(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	token := c.client.Connect()
	select {
	case <-token.Done():
		return errors.Wrap(token.Error(), "connect")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Disconnect publishes "offline" and disconnects.
func (c *Client) Disconnect() {
	if !c.enabled || c.client == nil {
		return
	}
	c.client.Publish(c.status, 1, true, "offline").WaitTimeout(time.Second)
	c.client.Disconnect(250)
}

// Publish publishes payload to topic without waiting for delivery.
func (c *Client) Publish(topic string, payload string) {
	if !c.enabled {
		return
	}
	c.client.Publish(topic, 0, false, payload)
}

// IsEnabled returns whether MQTT is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}

func (c *Client) handleConnect(client paho.Client) {
	c.log.Info().Msg("MQTT connection established")
	client.Publish(c.status, 1, true, "online")
}

func (c *Client) handleConnectionLost(client paho.Client, err error) {
	c.log.Warn().Err(err).Msg("MQTT connection lost")
}

// pahoLogger routes paho's internal logging to zerolog.
type pahoLogger struct {
	log   zerolog.Logger
	level zerolog.Level
}

func (l pahoLogger) Println(v ...interface{}) {
	l.log.WithLevel(l.level).Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (l pahoLogger) Printf(format string, v ...interface{}) {
	l.log.WithLevel(l.level).Msgf(format, v...)
}
