// Package data holds the content packages shipped with the binary.
package data

import "embed"

// Packages contains every file under packages/.
//
//go:embed packages
var Packages embed.FS

// DefaultPackage is the file name of the package used when none is configured.
const DefaultPackage = "mystery_manor.json"
