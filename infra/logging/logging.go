package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Setup points the standard logrus logger at a file. The TUI owns stdout, so
// the client never logs to the terminal. The returned closer flushes the file.
func Setup(level, path string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	log.SetOutput(f)
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	return f, nil
}
