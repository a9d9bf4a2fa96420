// Package cdlog is the shared logger for the cd encode/decode commands:
// a thin charmbracelet/log wrapper so the commands under cmd/ report
// through one configurable sink instead of raw fmt.Println; the cd/
// packages do not log
// (spec §7's policy that decoder anomalies are "reported" rather than
// fatal, and §6's "-v, --verbose").
package cdlog

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "cd",
})

// SetVerbose switches the logger between its default level (info and
// above) and debug level, per the "-v, --verbose" flag.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
