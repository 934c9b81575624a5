package logger

import (
	"github.com/sirupsen/logrus"
)

// Log - общий логгер приложения. До вызова Init пишет текстом на уровне
// info, чтобы ранние сообщения и тесты не требовали настройки.
var Log = logrus.New()

// Init настраивает уровень и формат: JSON в production для сборщиков
// логов, текст с полными временными метками в остальных окружениях.
func Init(level, environment string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if environment == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
