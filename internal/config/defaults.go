package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for optional configuration parameters.
const (
	DefaultLogLevel     = "info"
	DefaultLogJSON      = false
	DefaultDBPath       = "streakwatch.db"
	DefaultFallbackName = "someone"
	DefaultRecentLimit  = 5
	DefaultStoreTimeout = 5 * time.Second
)

// DefaultWatchWords is the forbidden substring list used when none is
// configured.
var DefaultWatchWords = []string{"zf"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	// Registered empty so BOT_TELEGRAM_TOKEN is visible to Unmarshal;
	// validation rejects the empty value.
	v.SetDefault("telegram.token", "")

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("watch.words", DefaultWatchWords)
	v.SetDefault("watch.fallback_name", DefaultFallbackName)
	v.SetDefault("watch.recent_limit", DefaultRecentLimit)
	v.SetDefault("watch.store_timeout", DefaultStoreTimeout)

	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 4 * * *")
}
