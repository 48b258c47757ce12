// Package database handles catalog database connections and schema
// inspection.
//
// Connect wraps GORM to configure a MySQL connection from the
// application configuration, with pool limits and an initial ping.
// The connection is optional: features that do not need the catalog
// run without it.
//
// The inspector helpers (GetTableColumns, MissingColumns) verify that
// the catalog table carries the expected columns before a reconcile
// mutates it.
package database
