// Package logging builds the structured JSON logger shared by every component.
// Each entry is a single JSON object per line with "ts", "level" and "msg" keys.
package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing JSON lines to w, stamping entries in loc.
func New(w io.Writer, loc *time.Location) *logrus.Logger {
	if loc == nil {
		loc = time.UTC
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&zonedFormatter{
		loc: loc,
		json: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		},
	})
	return l
}

// Location resolves an IANA zone name, falling back to UTC when it is unknown.
func Location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

type zonedFormatter struct {
	loc  *time.Location
	json *logrus.JSONFormatter
}

func (f *zonedFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.json.Format(e)
}
