// Package models defines the catalog's persistence model.
package models

import "time"

// Record is one cataloged scene asset. Object keys are unique; the
// summary columns are filled in when the asset was inspected and left
// zero for entries indexed straight from a storage listing.
type Record struct {
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Key       string    `gorm:"column:object_key;uniqueIndex;size:512" json:"key"`
	Category  string    `gorm:"column:category;size:16" json:"category"`
	Tag       string    `gorm:"column:tag;size:16" json:"tag"`
	Size      int64     `gorm:"column:size" json:"size"`
	Checksum  string    `gorm:"column:checksum;size:64" json:"checksum"`
	Label     string    `gorm:"column:label;size:255" json:"label"`
	Triangles int       `gorm:"column:triangles" json:"triangles"`
	Voxels    int64     `gorm:"column:voxels" json:"voxels"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (Record) TableName() string {
	return "scene_assets"
}

// RequiredColumns is the column set the reconcile preflight verifies.
var RequiredColumns = []string{
	"id", "object_key", "category", "tag", "size", "checksum", "label",
}
