package models

import "time"

// -----------------------------------------------------------------------------
// Configuration models loaded from YAML
// -----------------------------------------------------------------------------

// MConfig is the root application configuration.
type MConfig struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`

	// REST command API
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// gRPC health service
	GRPC_Host string `yaml:"grpc_host"`
	GRPC_Port int    `yaml:"grpc_port"`

	FIX  *MFIXConfig  `yaml:"fix"`
	Hub  *MHubConfig  `yaml:"hub"`
	NATS *MNATSConfig `yaml:"nats"`
}

// -----------------------------------------------------------------------------

// MFIXConfig holds the session engine settings. SettingsFile points at the
// engine's own cfg (comp IDs, hosts, heartbeat); the fields below are what the
// gateway itself needs for message construction and logon.
type MFIXConfig struct {
	SettingsFile string `yaml:"settings_file"`

	SenderCompID string `yaml:"sender_comp_id"`
	TargetCompID string `yaml:"target_comp_id"`

	Account  string `yaml:"account"`
	Password string `yaml:"password"`
}

// -----------------------------------------------------------------------------

// MHubConfig configures the websocket broadcast endpoint.
type MHubConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Path string `yaml:"path"`

	// QueueSize is the per-subscriber pending event budget. A subscriber
	// whose queue is full gets dropped.
	QueueSize int `yaml:"queue_size"`
}

// -----------------------------------------------------------------------------

// MNATSConfig holds NATS connection parameters for the optional event sink.
type MNATSConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Servers       []string `yaml:"servers"`
	ClientID      string   `yaml:"client_id"`
	SubjectPrefix string   `yaml:"subject_prefix"`

	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReconnectWait  time.Duration `yaml:"reconnect_wait"`
	MaxReconnects  int           `yaml:"max_reconnects"`
	FlushTimeout   time.Duration `yaml:"flush_timeout"`

	JetStream *MJetStreamConfig `yaml:"jetstream"`
}

// MJetStreamConfig enables persistent publishing over JetStream.
type MJetStreamConfig struct {
	Enabled    bool          `yaml:"enabled"`
	StreamName string        `yaml:"stream_name"`
	Subjects   []string      `yaml:"subjects"`
	Replicas   int           `yaml:"replicas"`
	MaxAge     time.Duration `yaml:"max_age"`
	MaxMsgs    int64         `yaml:"max_msgs"`
	MaxBytes   int64         `yaml:"max_bytes"`
	MaxMsgSize int           `yaml:"max_msg_size"`
}
