package config

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"

	"github.com/digimatspa/entwine/internal/logging"
	"github.com/digimatspa/entwine/tree"
)

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("metadata.json", bytes.NewReader([]byte(schemaJSON))); err != nil {
		panic(err)
	}
	schema, err := compiler.Compile("metadata.json")
	if err != nil {
		panic(err)
	}
	return schema
}

// Load reads a persisted metadata document from path (any format viper
// supports: JSON, YAML, TOML) and validates it against the metadata
// schema before constructing a Structure from it.
//
// viper lowercases every key it reads, so the document is decoded through
// viper's (case-insensitive) struct binding first and then re-marshaled
// through tree.Metadata's JSON tags before schema validation, rather than
// validating viper's own lowercased map directly.
func Load(path string) (*tree.Structure, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "config: reading metadata file")
	}

	var meta tree.Metadata
	if err := v.Unmarshal(&meta); err != nil {
		return nil, errors.Wrap(err, "config: decoding metadata")
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, errors.Wrap(err, "config: re-marshaling metadata")
	}

	return LoadFromJSON(raw)
}

// LoadFromJSON validates and decodes a metadata document already in
// memory, the path config.Load and tests both funnel through.
func LoadFromJSON(raw []byte) (*tree.Structure, error) {
	var asAny interface{}
	if err := json.Unmarshal(raw, &asAny); err != nil {
		return nil, errors.Wrap(err, "config: parsing metadata")
	}
	if err := compiledSchema.Validate(asAny); err != nil {
		return nil, errors.Wrap(err, "config: metadata failed schema validation")
	}

	var meta tree.Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, errors.Wrap(err, "config: decoding metadata")
	}

	if meta.NumPointsHint == 0 {
		logging.Global().Warn("loaded metadata with no numPointsHint")
	}

	return tree.NewStructureFromMetadata(meta)
}

// Save serializes s back to a metadata JSON document, the inverse of Load.
func Save(s *tree.Structure) ([]byte, error) {
	return json.Marshal(s.ToMetadata())
}
