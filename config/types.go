package config

// ServerConfig contains HTTP API configuration
type ServerConfig struct {
	Port             int `yaml:"port" validate:"gt=0,lte=65535"`
	RequestTimeoutMS int `yaml:"requestTimeoutMS" validate:"gte=0"`
}

// GTFSRTConfig selects the realtime feed
type GTFSRTConfig struct {
	Line      string `yaml:"line"`
	FeedURL   string `yaml:"feedURL" validate:"omitempty,url"`
	APIKey    string `yaml:"apiKey"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// GTFSConfig points at the static GTFS tables (directory, zip, or URL)
type GTFSConfig struct {
	StaticPath string `yaml:"staticPath"`
}

// CacheConfig contains the trip snapshot location
type CacheConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig toggles the /metrics endpoint
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	GTFSRT  GTFSRTConfig  `yaml:"gtfsrt"`
	GTFS    GTFSConfig    `yaml:"gtfs"`
	Cache   CacheConfig   `yaml:"cache"`
	Metrics MetricsConfig `yaml:"metrics"`
}
