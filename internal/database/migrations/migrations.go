package migrations

import "embed"

// Migrations — встроенные SQL-файлы миграций схемы (пользователи и профили
// атлетов). Читаются мигратором через источник iofs.
//
//go:embed *.sql
var Migrations embed.FS
