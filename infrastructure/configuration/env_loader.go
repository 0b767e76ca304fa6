package configuration

import (
	"os"

	"github.com/joho/godotenv"

	"rating-dashboard/infrastructure/logger"
)

// LoadEnvFromFile loads KEY=VALUE pairs from the given files (config.env,
// .env). Missing files are skipped and existing env vars are not
// overridden.
func LoadEnvFromFile(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			logger.GetLogger().WithField("file", p).Debug("env file not found")
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.GetLogger().WithField("error", err).WithField("file", p).Warn("Failed to load env file")
			continue
		}
		logger.GetLogger().WithField("file", p).Info("Loaded env file")
	}
}
