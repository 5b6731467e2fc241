// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"database/sql"
)

// DBDeps holds database/back-end dependencies for the app.
// Extend this struct as the app evolves.
type DBDeps struct {
	DB *sql.DB
}
