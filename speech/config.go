package speech

import "github.com/spf13/viper"

type Config struct {
	BaseURL            string `mapstructure:"base_url"`
	APIKey             string `mapstructure:"api_key"`
	TranscriptionModel string `mapstructure:"transcription_model"`
	TranslationModel   string `mapstructure:"translation_model"`
	SynthesisModel     string `mapstructure:"synthesis_model"`
	SynthesisEnabled   bool   `mapstructure:"synthesis_enabled"`
	SynthesisVoice     string `mapstructure:"synthesis_voice"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("base_url"), "https://api.openai.com/v1")
	v.SetDefault(p("api_key"), "")
	v.SetDefault(p("transcription_model"), "whisper-1")
	v.SetDefault(p("translation_model"), "gpt-4")
	v.SetDefault(p("synthesis_model"), "tts-1")
	v.SetDefault(p("synthesis_enabled"), false)
	v.SetDefault(p("synthesis_voice"), "alloy")
}
