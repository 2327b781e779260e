package config

import (
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL" default:"sqlite:///./accounting.db"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	// Migrate applies pending schema migrations when the server starts.
	Migrate bool `envconfig:"MIGRATE" default:"true"`
}

type CORS struct {
	Origins []string `envconfig:"ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// EventBus selects where domain events are published after a mutation commits.
// URL is a Redis URL, a comma-separated Kafka broker list or an AMQP URL depending on Driver.
type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory"`
	URL    string `envconfig:"URL"`
	Topic  string `envconfig:"TOPIC" default:"ledgerbook.events"`
	Queue  string `envconfig:"QUEUE" default:"ledgerbook.events"`
}

type Metrics struct {
	Enabled bool   `envconfig:"ENABLED" default:"true"`
	Route   string `envconfig:"ROUTE" default:"/metrics"`
}

// Cache optionally memoises the ledger summary between mutations. It is off
// unless TTL is positive; with it on, writers outside this process are seen
// only after TTL.
type Cache struct {
	Driver string        `envconfig:"DRIVER" default:"memory"`
	URL    string        `envconfig:"URL"`
	TTL    time.Duration `envconfig:"TTL" default:"0s"`
	Prefix string        `envconfig:"PREFIX" default:"ledgerbook:"`
}

type Report struct {
	RecentLimit int `envconfig:"RECENT_LIMIT" default:"10"`
	ChartDays   int `envconfig:"CHART_DAYS" default:"30"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledgerbook]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"8000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	CORS      *CORS      `envconfig:"CORS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	EventBus  *EventBus  `envconfig:"EVENT_BUS"`
	Metrics   *Metrics   `envconfig:"METRICS"`
	Cache     *Cache     `envconfig:"CACHE"`
	Report    *Report    `envconfig:"REPORT"`
}
