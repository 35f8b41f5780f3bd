package entt

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// debugLog is the package-level logger for diagnostic, non-hot-path events:
// page-pool growth, hierarchy registration, and rejected duplicate
// emplaces. It is never consulted on the emplace/erase/iterate hot path.
//
// Grounded on Cognitive-Dungeon's pkg/logger, the one logging setup found
// anywhere in the retrieval pack (env-var level, plain stdlib os.Getenv,
// output to a stream): adapted here to logrus's structured logger directly
// rather than that file's package-level *logrus.Logger var, since this
// package has no init-time entry point to call an explicit Init from.
var debugLog = newDebugLogger()

func newDebugLogger() *logrus.Logger {
	l := logrus.New()
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("ENTT_LOG_LEVEL")))
	if err != nil {
		level = logrus.WarnLevel
	}
	l.SetLevel(level)
	l.SetOutput(os.Stderr)
	if strings.EqualFold(os.Getenv("ENTT_LOG_FORMAT"), "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}
