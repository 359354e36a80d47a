package sfu

import "github.com/spf13/viper"

type Config struct {
	BridgeURL       string `mapstructure:"bridge_url"`
	RouterCacheSize int    `mapstructure:"router_cache_size"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("bridge_url"), "http://127.0.0.1:3100")
	v.SetDefault(p("router_cache_size"), 1024)
}
