// Package assets manages scene asset files in object storage.
//
// Assets live in a single bucket under category prefixes: scenes/ for
// OSP object files, volumes/ for RAW bricks, and meshes/ for PLY
// meshes. The feature supports uploading, downloading, listing, and
// deleting assets, plus inspection: streaming an object through the
// loader registry and returning the decoded asset's summary.
//
// OSP files referencing sibling objects (a RAW brick next to the
// scene file) resolve those references against the same bucket, so a
// stored scene inspects the same way a local one loads.
//
// # HTTP Endpoints
//
//   - GET    /assets             : list assets (?prefix= filters)
//   - POST   /assets/:category/:name : upload a new asset (request body)
//   - GET    /assets/object/*    : download an asset
//   - DELETE /assets/object/*    : delete an asset
//   - GET    /assets/inspect/*   : decode an asset and return its summary
package assets
