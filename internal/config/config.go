package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port     string
		LogLevel string
	}
	Filter struct {
		DebounceMS  int
		LexiconFile string
	}
	Worker struct {
		TokenSecret   string
		TokenSkewSecs int
		TokenExpMin   int
	}
	Loop struct {
		TTSTimeoutSec int
	}
}

func Load() Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("filter.debounce_ms", 150)
	v.SetDefault("filter.lexicon_file", "")

	v.SetDefault("worker.token_skew_secs", 30)
	v.SetDefault("worker.token_exp_min", 60)

	v.SetDefault("loop.tts_timeout_sec", 60)

	// Map envs
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.log_level", "LOG_LEVEL")

	v.BindEnv("filter.debounce_ms", "FILTER_DEBOUNCE_MS")
	v.BindEnv("filter.lexicon_file", "FILTER_LEXICON_FILE")

	v.BindEnv("worker.token_secret", "WORKER_TOKEN_SECRET")
	v.BindEnv("worker.token_skew_secs", "WORKER_TOKEN_SKEW_SECS")
	v.BindEnv("worker.token_exp_min", "WORKER_TOKEN_EXP_MIN")

	v.BindEnv("loop.tts_timeout_sec", "LOOP_TTS_TIMEOUT_SEC")

	var c Config
	c.Server.Port = toString(v.Get("server.port"))
	c.Server.LogLevel = v.GetString("server.log_level")

	c.Filter.DebounceMS = v.GetInt("filter.debounce_ms")
	c.Filter.LexiconFile = v.GetString("filter.lexicon_file")

	c.Worker.TokenSecret = v.GetString("worker.token_secret")
	c.Worker.TokenSkewSecs = v.GetInt("worker.token_skew_secs")
	c.Worker.TokenExpMin = v.GetInt("worker.token_exp_min")

	c.Loop.TTSTimeoutSec = v.GetInt("loop.tts_timeout_sec")

	log.Printf("config loaded: port=%s debounce_ms=%d lexicon_file=%q", c.Server.Port, c.Filter.DebounceMS, c.Filter.LexiconFile)
	return c
}

func toString(v any) string { return fmt.Sprint(v) }
