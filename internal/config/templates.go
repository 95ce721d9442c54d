package config

import (
	"fmt"
	"os"
)

// Template returns a commented starter config.
func Template() string {
	return hostTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(hostTemplate), 0o600)
}

const hostTemplate = `app = "sbcontrol"
# one of: 1.12, 1.13, 1.16, 1.20, 1.20.2, 1.20.3
version = "1.20.3"
log_level = "info"

# Identifier overrides for hosts on another patch release.
[packet_ids]
# display_objective = 0x55
# objective = 0x5E
# team = 0x60
# score = 0x61
# reset_score = 0x42
`
