// Package sl содержит вспомогательные функции для структурированного логгера slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to build snapshot", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Service возвращает slog.Attr с ключом "service" и названием стримингового сервиса.
// Используется в логах движка распределения для единообразной разметки.
func Service(name string) slog.Attr {
	return slog.String("service", name)
}
