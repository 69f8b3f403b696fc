package logger

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Logger описывает минимальный интерфейс структурированного логгера,
// достаточный для использования в handler'ах, middleware и ядре мастера.
type Logger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type stdLogger struct{}

// Default возвращает простой логгер на базе стандартного log.Printf.
// В будущем реализацию можно заменить на zap/logrus/zerolog без изменения интерфейса.
func Default() Logger {
	return &stdLogger{}
}

func (l *stdLogger) Info(msg string, fields map[string]any) {
	log.Printf("INFO: %s%s", msg, formatFields(fields))
}

func (l *stdLogger) Error(msg string, fields map[string]any) {
	log.Printf("ERROR: %s%s", msg, formatFields(fields))
}

// formatFields сериализует поля в детерминированном порядке ключей
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(stringify(fields[k]))
	}
	return b.String()
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

type nopLogger struct{}

// Nop возвращает логгер, который ничего не пишет. Используется в тестах.
func Nop() Logger {
	return &nopLogger{}
}

func (l *nopLogger) Info(msg string, fields map[string]any)  {}
func (l *nopLogger) Error(msg string, fields map[string]any) {}
