package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Deriverse Analytics Configuration

[data]
# Trade data source: "mock" or "file"
source = "mock"
# JSON trade file, used when source = "file"
file = ""
# Seed for the mock trade generator (same seed, same trades)
seed = 42

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
# Time format
time_format = "15:04:05"

[export]
# Directory for CSV exports
directory = "."

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log file path (empty disables file logging)
file = ""
max_size_mb = 10
max_backups = 3
max_age_days = 28

[profile]
# Behavioral pattern detection thresholds
revenge_trade_limit = 3
overtrading_high_days = 5
cuts_winners_ratio = 0.7
holds_losers_ratio = 1.5
streak_size_factor = 1.3
streak_chase_limit = 5
time_concentration = 0.5
size_cv_limit = 0.5
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
