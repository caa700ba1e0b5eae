// Package config is responsible for initializing the application's configuration.
// It uses the Viper library to read settings from a config file, environment
// variables, and command-line flags, providing a unified configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/emilroby/nsefi-harvester/internal/logging"
)

// InitConfig initializes the application's configuration using Viper.
// It sets up default values, defines configuration search paths, and enables
// reading from environment variables. This function is designed to be called
// once at application startup so that configuration is loaded and available
// to all other packages. An explicit cfgFile overrides the search paths.
func InitConfig(cfgFile string) {
	// --- Set Search Paths ---
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")                // Current working directory
		viper.AddConfigPath("/etc/harvester/")  // System-wide configuration
		viper.AddConfigPath("$HOME/.harvester") // User-specific configuration
	}

	// --- Set Defaults ---
	const defaultUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	viper.SetDefault("http.user_agent", defaultUA)
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.respect_robots", false)

	viper.SetDefault("log.development", false)

	// Snapshot persistence. One JSON document per (year, month).
	viper.SetDefault("snapshot.dir", "data/cache")
	viper.SetDefault("snapshot.prefix", "updates")
	viper.SetDefault("snapshot.stale_after", "3h")

	// Optional cloud mirror of written snapshots.
	viper.SetDefault("mirror.provider", "none")
	viper.SetDefault("mirror.gcs.bucket", "")

	// Read-only accessor for the dashboard.
	viper.SetDefault("api.addr", ":8080")

	// Known source categories. Each entry feeds one harvest pipeline pass.
	viper.SetDefault("sources", []map[string]any{
		{
			"category": "CTUIL",
			"url":      "https://ctuil.in/latestnews?p=ajax",
			"method":   "POST",
			"type":     "Update",
			"form": map[string]string{
				"sort_field":     "LatestNews.news_date",
				"sort_type":      "DESC",
				"page":           "1",
				"search_keyword": "",
				"from_date":      "",
				"to_date":        "",
			},
			"headers": map[string]string{
				"Accept":           "*/*",
				"X-Requested-With": "XMLHttpRequest",
				"Origin":           "https://ctuil.in",
				"Referer":          "https://ctuil.in/latestnews",
			},
		},
		// CERC publishes across several list pages; each carries its own
		// item type and all feed the one CERC category.
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/viewall.html",
			"method":   "GET",
			"type":     "Regulation",
		},
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/notice-letter.html",
			"method":   "GET",
			"type":     "Regulation",
		},
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/Disc_Paper.html",
			"method":   "GET",
			"type":     "Regulation",
		},
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/Work_Paper.html",
			"method":   "GET",
			"type":     "Regulation",
		},
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/Draft_reg.html",
			"method":   "GET",
			"type":     "Draft Regulation",
		},
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/Current_reg.html",
			"method":   "GET",
			"type":     "Regulation",
		},
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/Repeal_reg.html",
			"method":   "GET",
			"type":     "Regulation",
		},
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/recent_orders.html",
			"method":   "GET",
			"type":     "Orders",
		},
		{
			"category": "CERC",
			"url":      "https://cercind.gov.in/recent_rops.html",
			"method":   "GET",
			"type":     "ROP",
		},
	})

	// --- Environment Variables ---
	viper.SetEnvPrefix("HARVESTER") // e.g., HARVESTER_SNAPSHOT_DIR=/var/cache
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// --- Read Config File ---
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults and environment variables suffice.
			logging.L.Warn("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
