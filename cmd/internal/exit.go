package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	outMux sync.Mutex
	quiet  bool
)

// SetQuiet suppresses Info output when true. Echo and Fatal are not affected.
func SetQuiet(val bool) {
	outMux.Lock()
	defer outMux.Unlock()
	quiet = val
}

// Fatal will Echo the message and os.Exit with code 1.
func Fatal(msg string, args ...any) {
	Echo(msg, args...)
	os.Exit(1)
}

// Echo will emit the given message to stderr without any logging formatting.
// It's safe to call from multiple goroutines.
func Echo(msg string, args ...any) {
	outMux.Lock()
	defer outMux.Unlock()
	emit(os.Stderr, msg, args...)
}

// Info will emit the given message to stdout unless SetQuiet(true) was called.
func Info(msg string, args ...any) {
	outMux.Lock()
	defer outMux.Unlock()
	if quiet {
		return
	}
	emit(os.Stdout, msg, args...)
}

func emit(w io.Writer, msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(w, msg, args...)
}
