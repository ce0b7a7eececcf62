// Package config loads the persisted index metadata document described in
// spec.md §6 — from a file via viper, validated against a JSON schema —
// and turns it into a tree.Structure.
package config

// schemaJSON is the JSON Schema the persisted metadata document must
// satisfy before it reaches tree.NewStructureFromMetadata. Validated with
// santhosh-tekuri/jsonschema/v5, the same validator the teacher's go.mod
// carries (indirectly) and janelia-flyem-dvid depends on directly for
// exactly this purpose: rejecting a malformed stored document before it
// reaches domain logic.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["nullDepth", "baseDepth", "coldDepth", "chunkPoints", "dimensions", "numPointsHint", "dynamicChunks", "subset"],
  "properties": {
    "nullDepth": {"type": "integer", "minimum": 0},
    "baseDepth": {"type": "integer", "minimum": 0},
    "coldDepth": {"type": "integer", "minimum": 0},
    "chunkPoints": {"type": "integer", "minimum": 0},
    "dimensions": {"type": "integer", "enum": [2, 3]},
    "numPointsHint": {"type": "integer", "minimum": 0},
    "dynamicChunks": {"type": "boolean"},
    "subset": {
      "type": "array",
      "items": {"type": "integer", "minimum": 0},
      "minItems": 2,
      "maxItems": 2
    }
  }
}`
