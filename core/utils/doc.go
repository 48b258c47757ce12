// Package utils provides small conversion helpers shared across
// features: loose any-to-int/bool coercion for query and loader
// parameters, and dimension-string parsing for volumes.
package utils
