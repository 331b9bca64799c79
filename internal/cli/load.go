package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"exhaust/internal/schema"
	"exhaust/internal/shape"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Shape file not found
	ErrCodeLoadFailed  = "E003" // Shape file could not be decoded
	ErrCodeCompile     = "E004" // Shape description is invalid
	ErrCodeStoreFailed = "E005" // Run store error
	ErrCodeRunMismatch = "E006" // Resumed run does not match the shape
)

// loadedShape bundles everything the commands need from one shape file.
type loadedShape struct {
	Doc    *schema.Document
	Shape  shape.Enumerable
	Digest string
}

// loadShape reads, decodes and compiles a shape description file.
// Returned errors are already ExitErrors with the right code attached.
func loadShape(formatter *OutputFormatter, path string) (*loadedShape, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		msg := fmt.Sprintf("shape file not found: %s", path)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeNotFound, msg))
	}

	doc, err := schema.LoadFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeLoadFailed, err)
	}

	compiled, err := schema.Compile(doc)
	if err != nil {
		_ = formatter.Error(ErrCodeCompile, err.Error(), compileDetails(err))
		return nil, WrapExitError(ExitFailure, ErrCodeCompile, err)
	}

	return &loadedShape{Doc: doc, Shape: compiled, Digest: shapeDigest(doc)}, nil
}

// compileDetails extracts structured details from a schema compile error.
func compileDetails(err error) any {
	var ce *schema.CompileError
	if errors.As(err, &ce) {
		return map[string]string{"code": ce.Code, "path": ce.Path}
	}
	return nil
}

// shapeDigest fingerprints a shape description. The node tree marshals
// with fixed struct field order, so the digest is stable for equal trees
// regardless of which front end decoded them.
func shapeDigest(doc *schema.Document) string {
	data, err := json.Marshal(doc)
	if err != nil {
		// A Node tree of scalars and nested Nodes always marshals.
		panic(fmt.Sprintf("marshal shape description: %v", err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
