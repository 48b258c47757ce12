// Package formats exposes the loader registry contents.
//
// It reports which file-format tags are registered per loader
// category, backing both the GET /formats endpoint and the 'formats'
// CLI command. The feature is read-only; registration itself happens
// at startup via the format package.
package formats
