package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the application logger. Init must run before the first request.
var Log = logrus.New()

func Init() {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if path := os.Getenv("LOG_FILE"); path != "" {
		rotating := &lumberjack.Logger{
			Filename:  path,
			MaxSize:   10, // megabytes
			MaxAge:    28, // days
			LocalTime: true,
		}
		Log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	}
}
