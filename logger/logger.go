package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

const serviceName = "inkpress"

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Tests and tools that never call Init still get a usable logger.
func init() {
	Init(false)
}

// Init rebuilds the global logger. Production output is JSON, development
// output stays human readable on stderr.
func Init(production bool) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	if production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log = logger.WithFields(logrus.Fields{
		"service":        serviceName,
		"is_development": !production,
	})
}
