// Package catalog maintains a database index of stored scene assets.
//
// Each catalog record ties an object key to its loader category and
// tag plus summary data captured at inspection time (size, checksum,
// triangle or voxel counts). The feature requires the optional
// catalog database; it stays disabled when no connection is
// available.
//
// # Reconciliation
//
// Reconcile compares the storage bucket's listing against the catalog
// rows: objects without a record are missing from the catalog, records
// without an object are stale. With fix enabled, missing objects are
// indexed from their listing metadata and stale records pruned.
//
// # HTTP Endpoints
//
//   - GET    /catalog            : list records (?limit=&offset=)
//   - GET    /catalog/reconcile  : report reconciliation drift
//   - POST   /catalog/reconcile  : reconcile and apply repairs
//   - GET    /catalog/:id        : fetch one record
//   - DELETE /catalog/:id        : delete one record
package catalog
