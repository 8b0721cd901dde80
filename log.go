package framegraph

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// log is the package-wide structured logger. It records non-fatal
// events: today, the ShaderCache's hot-reload invalidations and
// watch errors. Programming errors still panic; they are never
// merely logged.
var log = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	Prefix: "framegraph",
})

// SetLogger replaces the package logger, e.g. to redirect it into an
// application's own charmbracelet/log instance.
func SetLogger(l *charmlog.Logger) {
	if l != nil {
		log = l
	}
}
