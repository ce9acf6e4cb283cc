package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PLOG_*).
// Values override the file config but never an explicitly set flag.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("PLOG_HOST"), &cfg.Host)
	s.setString("log-level", os.Getenv("PLOG_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("metrics-addr", os.Getenv("PLOG_METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setIntFromString("port", os.Getenv("PLOG_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("chunk-size", os.Getenv("PLOG_CHUNK_SIZE"), &cfg.ChunkSize); err != nil {
		return err
	}
	return s.setDuration("poll", os.Getenv("PLOG_FOLLOW_POLL"), &cfg.FollowPoll)
}
