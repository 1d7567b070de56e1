package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <package.json|package.yaml>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &PackageValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid!\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

type PackageValidator struct {
	errors []string
}

func (v *PackageValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	format, err := content.FormatFromPath(baseName)
	if err != nil {
		return fmt.Errorf("package file must have a .json, .yaml or .yml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if !isValidPackageFilename(nameWithoutExt) {
		return fmt.Errorf("package filename '%s' must be lowercase snake_case (e.g., my_story.json, not my-story.json or MyStory.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	// Decode is strict about unknown fields in both formats.
	p, err := content.Decode(bytes.NewReader(data), format)
	if err != nil {
		return fmt.Errorf("file %s failed strict decoding: %w", filename, err)
	}

	v.validatePackage(p, nameWithoutExt)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *PackageValidator) validatePackage(p *content.Package, fileKey string) {
	v.validateIDFormat("package name", p.Name)
	if p.Name != strings.TrimPrefix(fileKey, "x.") {
		v.addError(fmt.Sprintf("package name '%s' should match the file name '%s'", p.Name, fileKey))
	}
	if p.Title == "" {
		v.addError("package title is empty")
	}

	for id := range p.Locations {
		v.validateIDFormat("location ID", id)
	}
	for id := range p.Items {
		v.validateIDFormat("item ID", id)
	}
	for id := range p.NPCs {
		v.validateIDFormat("NPC ID", id)
	}
	for id := range p.Puzzles {
		v.validateIDFormat("puzzle ID", id)
	}
	v.validateIDFormat("bad ending flag", p.Endings.BadFlag)

	// Reference integrity is shared with the loader.
	var integrity *content.IntegrityError
	if err := p.Validate(); errors.As(err, &integrity) {
		for _, problem := range integrity.Problems {
			v.addError(problem)
		}
	} else if err != nil {
		v.addError(err.Error())
	}
}

func (v *PackageValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *PackageValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidPackageFilename(name string) bool {
	// Allow 'x.' prefix for experimental packages
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
