package migrations

import "embed"

// FS содержит миграции каталога материалов, применяются по порядку имён.
//go:embed *.sql
var FS embed.FS
