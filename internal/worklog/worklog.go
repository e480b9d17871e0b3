// Package worklog provides the operational (non-CSV) logger used for
// setup diagnostics and worker lifecycle messages, configured the way
// the teacher configures logrus for its Firecracker machine logger.
package worklog

import log "github.com/sirupsen/logrus"

// New returns a logrus logger leveled according to the CLI's
// --debug/--verbose/--quiet flags.
func New(debug, verbose, quiet bool) *log.Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{
		DisableColors:    false,
		FullTimestamp:    true,
		DisableTimestamp: false,
	})
	switch {
	case debug:
		logger.SetLevel(log.DebugLevel)
	case verbose:
		logger.SetLevel(log.InfoLevel)
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
