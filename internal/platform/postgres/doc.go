// Package postgres provides PostgreSQL implementations of the store interfaces
// using database/sql with the pgx driver. It also embeds the goose SQL
// migrations that define the schema.
package postgres
