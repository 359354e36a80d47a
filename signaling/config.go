package signaling

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// audio flush policy
	FlushInterval  time.Duration `mapstructure:"flush_interval"`
	FlushThreshold time.Duration `mapstructure:"flush_threshold"`
	MinFlushBytes  int           `mapstructure:"min_flush_bytes"`

	// per-connection audio ingest limit, chunks per second
	IngestRate  float64 `mapstructure:"ingest_rate"`
	IngestBurst int     `mapstructure:"ingest_burst"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("allowed_origins"), []string{"*"})
	v.SetDefault(p("flush_interval"), "1s")
	v.SetDefault(p("flush_threshold"), "3s")
	v.SetDefault(p("min_flush_bytes"), 4096)
	v.SetDefault(p("ingest_rate"), 20.0)
	v.SetDefault(p("ingest_burst"), 40)
}
