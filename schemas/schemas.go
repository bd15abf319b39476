// Package schemas embeds the JSON Schemas for the catalog data files.
package schemas

import "embed"

// Files holds every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names
const (
	ClientProfiles = "client_profiles.schema.json"
	ProductCatalog = "product_catalog.schema.json"
)
