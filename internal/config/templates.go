package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# TradeTrackr Configuration

[account]
# Starting capital for the equity curve
initial_capital = 10000.0
# Display currency code
currency = "USD"
# Path to the SQLite journal database (defaults to the config directory)
#database_path = ""

[analytics]
# Number of buckets in the P&L distribution histogram
distribution_buckets = 10

# Trading sessions for the time-of-day report. Hours are in the local
# day; start is inclusive, end exclusive, and end <= start wraps past
# midnight. Sessions must cover all 24 hours without overlap.
[[sessions]]
label = "Morning"
start_hour = 5
end_hour = 11

[[sessions]]
label = "Midday"
start_hour = 11
end_hour = 14

[[sessions]]
label = "Afternoon"
start_hour = 14
end_hour = 18

[[sessions]]
label = "Evening"
start_hour = 18
end_hour = 5

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
# Time format
time_format = "15:04:05"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Rotation settings
max_size_mb = 10
max_backups = 3
max_age_days = 30
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
