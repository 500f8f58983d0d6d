package source

import (
	"encoding/json"
	"strings"

	"github.com/huahuayu/etherscan-code-exporter/entity"
	"github.com/pkg/errors"
)

var ErrUnparseableSource = errors.New("contract source code is not verified or could not be parsed")

// Bundle is the part of a standard-json input we care about.
type Bundle struct {
	Sources entity.Manifest `json:"sources"`
}

// Unwrap parses the explorer's SourceCode field. Multi-file projects are
// sometimes wrapped in an extra pair of braces ("{{...}}"), so a failed parse
// is retried once with the first and last characters removed.
func Unwrap(raw string) (*Bundle, error) {
	bundle, err := parseBundle(raw)
	if err == nil {
		return bundle, nil
	}

	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 2 {
		return nil, err
	}
	return parseBundle(trimmed[1 : len(trimmed)-1])
}

// parseBundle only honours the exact "sources" key; encoding/json would
// otherwise also match "Sources" or "SOURCES".
func parseBundle(raw string) (*Bundle, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}

	bundle := &Bundle{}
	sources, ok := fields["sources"]
	if !ok || string(sources) == "null" {
		return bundle, nil
	}

	manifest := entity.NewManifest()
	if err := json.Unmarshal(sources, manifest); err != nil {
		return nil, err
	}
	bundle.Sources = manifest
	return bundle, nil
}

// BuildManifest turns contract metadata into the set of files to write.
// A parsed "sources" object is used as is. Anything else is a single-file
// contract named after ContractName with ext appended.
func BuildManifest(meta *entity.SourceCode, ext string) (entity.Manifest, error) {
	if bundle, err := Unwrap(meta.SourceCode); err == nil && bundle.Sources != nil {
		return bundle.Sources, nil
	}

	if meta.ContractName == "" {
		return nil, ErrUnparseableSource
	}

	manifest := entity.NewManifest()
	manifest.Set(meta.ContractName+ext, entity.SourceFile{Content: meta.SourceCode})
	return manifest, nil
}
