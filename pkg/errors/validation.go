package errors

import (
	"strings"
	"unicode"
)

// maxGeneNameLength bounds gene symbols and IDs accepted from the command line.
const maxGeneNameLength = 128

// ValidateGeneName validates a gene symbol or identifier supplied by a user.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateGeneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGene, "gene name cannot be empty")
	}
	if len(name) > maxGeneNameLength {
		return New(ErrCodeInvalidGene, "gene name too long (max %d characters)", maxGeneNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidGene, "gene name contains invalid characters: %q", name)
		}
	}
	return nil
}

// ValidatePath validates an output directory or file path supplied by a user.
// Relative and absolute paths are both accepted; null bytes are not.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "path contains invalid characters")
	}
	return nil
}
