package main

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

// logFormatter renders entries as "level: message key=value ...".
// No timestamps: output goes to a terminal or a build log that has its own.
type logFormatter struct{}

func (logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	switch {
	case entry.Level <= logrus.ErrorLevel:
		buf.WriteString("error: ")
	case entry.Level == logrus.WarnLevel:
		buf.WriteString("warning: ")
	case entry.Level >= logrus.DebugLevel:
		buf.WriteString("debug: ")
	}
	buf.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, " %s=%v", k, entry.Data[k])
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// newLogger returns a logger writing to w.
// quiet keeps warnings and errors; verbose adds debug entries.
func newLogger(w io.Writer, quiet, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(logFormatter{})

	switch {
	case quiet:
		log.SetLevel(logrus.WarnLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
