// logger.go keeps a plain-text transcript of every model interaction.
//
// Entries go to <dir>/logs/ai.log once SetLogDir has been called; until
// then logging is a no-op. Each request/response pair is framed so the
// prompt, the raw completion and the extracted SQL are easy to compare.
package ai

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	logMu  sync.Mutex
	logOut io.Writer
)

// SetLogDir opens (or creates) <dir>/logs/ai.log as the transcript.
func SetLogDir(dir string) error {
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(logDir, "ai.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	SetLogOutput(f)
	return nil
}

// SetLogOutput sends the transcript to w. A nil writer disables it.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	if c, ok := logOut.(io.Closer); ok && logOut != w {
		c.Close()
	}
	logOut = w
}

func logWrite(s string) {
	logMu.Lock()
	defer logMu.Unlock()
	if logOut != nil {
		io.WriteString(logOut, s) //nolint:errcheck
	}
}

// LogRequest records an outgoing generation request.
func LogRequest(provider, prompt, question string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"\n════════════════════════════════════════════════════════════════\n"+
			"[REQUEST] %s  |  Provider: %s\n"+
			"════════════════════════════════════════════════════════════════\n",
		ts, provider,
	)
	fmt.Fprintf(&sb, "Question:\n%s\n────────────────────────────────────────\n", question)
	fmt.Fprintf(&sb, "Prompt:\n%s\n────────────────────────────────────────\n", strings.TrimSpace(prompt))
	logWrite(sb.String())
}

// LogResponse records the completion, the SQL extracted from it and the
// error, if any.
func LogResponse(completion, sql string, err error) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	errStr := "(none)"
	if err != nil {
		errStr = err.Error()
	}
	entry := fmt.Sprintf(
		"[RESPONSE] %s\n"+
			"────────────────────────────────────────\n"+
			"Error: %s\n"+
			"────────────────────────────────────────\n"+
			"Raw Completion:\n%s\n"+
			"────────────────────────────────────────\n"+
			"Extracted SQL:\n%s\n"+
			"════════════════════════════════════════════════════════════════\n\n",
		ts, errStr, completion, sql,
	)
	logWrite(entry)
}
