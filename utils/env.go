package utils

import "equiptrack/config"

// IsProduction checks if the environment is production.
func IsProduction() bool {
	return config.GetEnv() == "production"
}
