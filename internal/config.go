package internal

import "time"

type Config struct {
	Host           string        `env:"HOST,default=0.0.0.0"`
	Port           int           `env:"PORT,default=5000"`
	BadgerFilepath string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string        `env:"LOG_LEVEL,default=INFO"`
	ClientURL      string        `env:"CLIENT_URL,default=http://localhost:5173"`

	// Per-session envelope buffer; a session falling this far behind
	// starts dropping and recovers via the reconnect snapshot.
	ConnectionBufferSize int `env:"CONNECTION_BUFFER_SIZE,default=32"`

	SinkTimeout    time.Duration `env:"SINK_TIMEOUT,default=2s"`
	PersistTimeout time.Duration `env:"PERSIST_TIMEOUT,default=5s"`

	DebugServer bool `env:"DEBUG_SERVER,default=false"`
	DebugPort   int  `env:"DEBUG_PORT,default=8081"`
}
