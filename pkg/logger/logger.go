package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogrusLogger implementa Logger com saída JSON estruturada
type LogrusLogger struct {
	log *logrus.Logger
}

// NewLogger cria uma nova instância de Logger usando LOG_LEVEL (padrão info)
func NewLogger() Logger {
	return NewLoggerWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewLoggerWithWriter cria um Logger que escreve em w no nível informado
func NewLoggerWithWriter(w io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return &LogrusLogger{log: l}
}

// NewNop cria um Logger que descarta tudo
func NewNop() Logger {
	return NewLoggerWithWriter(io.Discard, "panic")
}

// Info registra uma mensagem de informação
func (l *LogrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Info(msg)
}

// Error registra uma mensagem de erro
func (l *LogrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Error(msg)
}

// Debug registra uma mensagem de debug
func (l *LogrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Debug(msg)
}

// Warn registra uma mensagem de aviso
func (l *LogrusLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Warn(msg)
}

// fields converte pares chave/valor em logrus.Fields. Um valor sem chave vai para "extra".
func fields(keysAndValues []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 >= len(keysAndValues) {
			f["extra"] = keysAndValues[i]
			break
		}
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
