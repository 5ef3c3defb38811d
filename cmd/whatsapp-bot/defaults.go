package main

import (
	"time"

	"github.com/spf13/viper"
)

func initViperDefaults() {
	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.add_source", false)

	// HTTP server
	viper.SetDefault("server.bind", "0.0.0.0")
	viper.SetDefault("server.port", 8080)

	// State store. Backend: memory|redis|sqlite.
	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.redis.addr", "")
	viper.SetDefault("store.redis.password", "")
	viper.SetDefault("store.redis.db", 0)
	viper.SetDefault("store.redis.key_prefix", "")
	viper.SetDefault("store.sqlite.path", "")
	viper.SetDefault("store.sqlite.sweep_interval", 5*time.Minute)

	// Green-API
	viper.SetDefault("greenapi.base_url", "https://api.green-api.com")
	viper.SetDefault("greenapi.instance_id", "")
	viper.SetDefault("greenapi.api_token", "")
	viper.SetDefault("greenapi.request_timeout", 30*time.Second)

	// Outbound pacing and message format
	viper.SetDefault("outbound.min_delay", 2*time.Second)
	viper.SetDefault("outbound.max_delay", 4*time.Second)
	viper.SetDefault("outbound.use_buttons", true)

	// Screening thresholds
	viper.SetDefault("screening.min_weekly_hours", 15)
	viper.SetDefault("screening.max_age", 35)
	viper.SetDefault("screening.handoff_link", "")

	// Result notifications (empty URL disables)
	viper.SetDefault("notify.result_url", "")

	// Webhook workers
	viper.SetDefault("worker.queue_size", 128)
	viper.SetDefault("worker.max_concurrency", 8)
	viper.SetDefault("worker.job_timeout", 2*time.Minute)
}
