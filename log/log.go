// Package log provides global file-backed loggers plus an optional debug
// logger enabled with AP_DEBUG=1.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var logFileName = filepath.Join(os.TempDir(), "agentpane.log")

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger

	globalLogFile *os.File
	enabled       bool
)

// Initialize sets up the global loggers. Logs are written to a file in the
// temp dir so they never interleave with terminal output.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// Fall back to discarding logs rather than failing startup.
		InfoLog = log.New(io.Discard, "", 0)
		WarningLog = log.New(io.Discard, "", 0)
		ErrorLog = log.New(io.Discard, "", 0)
		return
	}

	InfoLog = log.New(f, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	globalLogFile = f
	enabled = true

	InitDebug()
}

// Close closes the log file. Every call to Initialize should be paired with
// a deferred Close.
func Close() {
	CloseDebug()
	if globalLogFile != nil {
		_ = globalLogFile.Close()
		globalLogFile = nil
	}
	if enabled {
		if fi, err := os.Stat(logFileName); err == nil && fi.Size() > 0 {
			fmt.Println("wrote logs to " + logFileName)
		}
	}
	enabled = false
}

// Path returns the location of the log file.
func Path() string {
	return logFileName
}
