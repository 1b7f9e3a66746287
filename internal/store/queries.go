package store

// SQL statement constants for load operations.
// Centralizing statements here keeps SQL separate from Go code and makes
// the schema contract reviewable in one place.

const (
	// queryFindCategoryByName resolves a category id by byte-exact name.
	// No LOWER(), no TRIM(): "Deportes", "deportes" and " Deportes" are
	// three different categories.
	// Parameter $1: category name
	queryFindCategoryByName = `
		SELECT id
		FROM categorias
		WHERE nombre = $1
	`

	// queryInsertCategory creates a category and returns the assigned id.
	// A concurrent creation of the same name fails the UNIQUE constraint
	// on nombre; callers re-query instead of treating that as fatal.
	// Parameter $1: category name
	queryInsertCategory = `
		INSERT INTO categorias (nombre)
		VALUES ($1)
		RETURNING id
	`

	// queryInsertChannel inserts one channel row. logo ($4) is passed as
	// a nullable value: nil becomes SQL NULL.
	// Parameters: $1 nombre, $2 url, $3 formato, $4 logo, $5 estado,
	// $6 categoria_id
	queryInsertChannel = `
		INSERT INTO canales (nombre, url, formato, logo, estado, categoria_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// queryCountChannels reports the current channel row count, used by
	// the append guard before loading into a non-empty table.
	queryCountChannels = `
		SELECT COUNT(*)
		FROM canales
	`
)
