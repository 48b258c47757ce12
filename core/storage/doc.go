// Package storage provides an abstraction layer for object storage.
//
// It wraps the MinIO Go client with a narrow interface covering the
// operations the asset features need: bucket checks, upload, download,
// stat, listing, and removal. The abstraction supports both AWS S3 and
// self-hosted MinIO, and makes storage interactions easy to mock in
// unit tests (see core/storage/mocks).
//
// # Layout
//
// Scene assets live under category prefixes in a single bucket:
// scenes/ for OSP object files, volumes/ for RAW bricks, and meshes/
// for PLY meshes.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	rc, err := client.GetObject(ctx, "scenes", "meshes/bunny.ply", minio.GetObjectOptions{})
package storage
