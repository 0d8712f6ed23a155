// Package migrations встраивает SQL миграции, чтобы goose мог применять их
// при старте API и в интеграционных тестах без доступа к файловой системе.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
