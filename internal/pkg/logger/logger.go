package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Level defaults to info and can be
// raised via Init from config.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Log.SetLevel(logrus.InfoLevel)
}

func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("unknown log level %q, keeping %s", level, Log.GetLevel())
		return
	}
	Log.SetLevel(lvl)
}
