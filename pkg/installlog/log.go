package installlog

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// Log is the append-only installation log shared by all stages of an
// installation run. Lines keep the order in which they were added.
// It is safe for concurrent use.
type Log struct {
	lock  sync.Mutex
	lines []string
}

func New() *Log {
	return &Log{}
}

// Add appends a single line. Embedded line breaks are split into
// separate lines.
func (l *Log) Add(line string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	for _, s := range strings.Split(strings.TrimSuffix(line, "\n"), "\n") {
		l.lines = append(l.lines, strings.TrimSuffix(s, "\r"))
	}
	log.Trace("{{line}}", "line", line)
}

func (l *Log) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.lines)
}

// Lines returns a snapshot of the actual log content.
func (l *Log) Lines() []string {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]string(nil), l.lines...)
}

// String returns the log as multi-line text, each line terminated by
// a newline.
func (l *Log) String() string {
	l.lock.Lock()
	defer l.lock.Unlock()
	var b strings.Builder
	for _, s := range l.lines {
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}

// Writer returns a writer adding every completed line written to it
// with the given prefix. A trailing incomplete line is flushed on Close.
func (l *Log) Writer(prefix string) io.WriteCloser {
	return &lineWriter{log: l, prefix: prefix}
}

type lineWriter struct {
	lock   sync.Mutex
	log    *Log
	prefix string
	buf    bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.buf.Write(p)
	for {
		data := w.buf.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		w.log.Add(w.prefix + strings.TrimSuffix(string(data[:i]), "\r"))
		w.buf.Next(i + 1)
	}
	return len(p), nil
}

func (w *lineWriter) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.buf.Len() > 0 {
		w.log.Add(w.prefix + w.buf.String())
		w.buf.Reset()
	}
	return nil
}
