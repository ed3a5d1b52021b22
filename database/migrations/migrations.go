// Package migrations contains the database migrations. Each file registers
// itself via init(); import the package for its side effects from
// cmd/posnet so everything is known at CLI startup. The same migrations are
// applied to every tier's database.
package migrations
