package main

import (
	"os"

	"github.com/signadot/partcat/config"
	"github.com/signadot/partcat/debug"
)

var theLog = debug.Logger()

// setupLog points the shared logger at stderr with the level and format of
// the session, a -log flag taking precedence over the file.
func setupLog(cfg *MainConfig, sess *config.Config) {
	level := sess.Log.Level
	if cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	if env := os.Getenv("PARTCAT_LOG_LEVEL"); env != "" && cfg.LogLevel == "" {
		level = env
	}
	theLog = debug.NewLogger(os.Stderr, level, sess.Log.Format)
	debug.SetLogger(theLog)
}
