// Package osp decodes OSP scene-object XML files into scene.Object
// assets.
//
// An OSP file is an XML document whose root element describes one
// scene object. Child elements named "volume", "triangleMesh", or
// "object" reference other files through a <filename> child; the
// remaining children of such an element become loader params for the
// referenced file (e.g. RAW volume dimensions). Any other child of
// the root is kept as a string parameter of the object.
//
//	<ospray name="demo">
//	  <ambient>0.2</ambient>
//	  <volume name="head">
//	    <dimensions>256 256 128</dimensions>
//	    <voxelType>uchar</voxelType>
//	    <filename>head.raw</filename>
//	  </volume>
//	  <triangleMesh name="bunny">
//	    <filename>bunny.ply</filename>
//	  </triangleMesh>
//	</ospray>
//
// Referenced files are resolved through the source's resolver, so the
// same document works for local directories and object storage.
package osp

import (
	"context"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"scene-manager/core/registry"
	"scene-manager/scene"
)

// Loader decodes one OSP scene file. It needs the registry to load
// the files the document references.
type Loader struct {
	reg *registry.Registry
}

// New returns a factory bound to the given registry.
func New(reg *registry.Registry) registry.Factory {
	return func() registry.Loader { return &Loader{reg: reg} }
}

// element is a generic XML node; the document is interpreted after
// unmarshaling rather than mapped to fixed structs.
type element struct {
	XMLName  xml.Name
	Name     string    `xml:"name,attr"`
	Children []element `xml:",any"`
	Text     string    `xml:",chardata"`
}

// Load implements registry.Loader.
func (l *Loader) Load(ctx context.Context, src *registry.Source) (scene.Asset, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open OSP source: %w", err)
	}
	defer rc.Close()

	var root element
	if err := xml.NewDecoder(rc).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse OSP document: %w", err)
	}

	obj := &scene.Object{
		Name:   objectName(&root, src),
		Params: make(map[string]string),
	}

	for i := range root.Children {
		child := &root.Children[i]
		switch child.XMLName.Local {
		case "volume":
			asset, err := l.loadReference(ctx, src, child, registry.VolumeFile)
			if err != nil {
				return nil, err
			}
			obj.Children = append(obj.Children, asset)
		case "triangleMesh", "trianglemesh":
			asset, err := l.loadReference(ctx, src, child, registry.TriangleMeshFile)
			if err != nil {
				return nil, err
			}
			obj.Children = append(obj.Children, asset)
		case "object":
			asset, err := l.loadReference(ctx, src, child, registry.ObjectFile)
			if err != nil {
				return nil, err
			}
			obj.Children = append(obj.Children, asset)
		default:
			obj.Params[child.XMLName.Local] = strings.TrimSpace(child.Text)
		}
	}

	return obj, nil
}

// loadReference loads the file a child element points at, passing the
// element's remaining children as loader params.
func (l *Loader) loadReference(ctx context.Context, src *registry.Source, el *element, cat registry.Category) (scene.Asset, error) {
	filename := ""
	params := make(map[string]string)
	for i := range el.Children {
		c := &el.Children[i]
		text := strings.TrimSpace(c.Text)
		if c.XMLName.Local == "filename" {
			filename = text
			continue
		}
		params[c.XMLName.Local] = text
	}
	if filename == "" {
		return nil, fmt.Errorf("%s element %q has no filename", el.XMLName.Local, el.Name)
	}

	tag := registry.TagFromPath(filename)
	if tag == "" {
		return nil, fmt.Errorf("%s reference %q has no extension to derive a tag from", el.XMLName.Local, filename)
	}

	sib, err := src.Sibling(filename, params)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", filename, err)
	}
	if closer, ok := sib.Reader.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	asset, err := l.reg.Create(ctx, cat, tag, sib)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", filename, err)
	}
	if el.Name != "" {
		rename(asset, el.Name)
	}
	return asset, nil
}

// rename applies the element's name attribute to the loaded asset.
func rename(asset scene.Asset, name string) {
	switch a := asset.(type) {
	case *scene.Volume:
		a.Name = name
	case *scene.Mesh:
		a.Name = name
	case *scene.Object:
		a.Name = name
	}
}

func objectName(root *element, src *registry.Source) string {
	if root.Name != "" {
		return root.Name
	}
	if src.Path == "" {
		return ""
	}
	base := filepath.Base(src.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
