package cli

import (
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/rileyhilliard/sitewatch/internal/config"
	"github.com/rileyhilliard/sitewatch/internal/errors"
	"github.com/rileyhilliard/sitewatch/internal/logger"
)

// logSession is where the standard logger writes for one command run.
type logSession struct {
	RunID string
	file  *os.File
}

// startLogging points the standard logger at path, or at fallback when path is
// empty. The dashboard passes io.Discard as fallback because it owns the screen.
// Every line carries a short run ID so runs appending to one file can be told apart.
func startLogging(path string, fallback io.Writer, verbose bool) (*logSession, error) {
	logger.SetDebug(verbose)

	s := &logSession{RunID: uuid.NewString()[:8]}
	out := fallback
	if path != "" {
		f, err := os.OpenFile(config.ExpandTilde(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot open log file "+path,
				"Check the directory exists and is writable")
		}
		s.file = f
		out = f
	}

	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetPrefix("[" + s.RunID + "] ")
	return s, nil
}

// Close restores stderr logging and closes the log file, if any.
func (s *logSession) Close() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("")
	if s.file != nil {
		s.file.Close()
	}
}

// loadConfig resolves the config file and applies command-line overrides.
func loadConfig(l logger.Logger) (*config.Config, string, error) {
	cfg, path := config.LoadOrDefault(cfgFile, l)
	if err := settingsFlags.Apply(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
