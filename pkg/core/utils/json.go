package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON errors from LLM outputs.
// Uses github.com/RealAlexandreAI/json-repair for intelligent repair.
// Supported repairs:
// - Missing quotes around keys
// - Single quotes instead of double quotes
// - Unclosed arrays/objects
// - Trailing commas
// - Comments and markdown code fences wrapping the object
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSONToStruct parses Human-friendly JSON (comments, unquoted keys,
// optional commas) directly into a Go struct.
func ParseHJSONToStruct(hjsonData string, schema interface{}) error {
	if err := hjson.Unmarshal([]byte(hjsonData), schema); err != nil {
		return fmt.Errorf("HJSON_UNMARSHAL_ERROR: %v", err)
	}
	return nil
}

// ParseModelJSON decodes a model-emitted JSON object into schema, trying
// strategies in order of strictness:
//  1. plain encoding/json
//  2. json-repair, then encoding/json
//  3. hjson (lenient: comments, unquoted keys)
//
// Returns an error only when all three fail.
func ParseModelJSON(raw string, schema interface{}) error {
	if err := json.Unmarshal([]byte(raw), schema); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	if err := ParseHJSONToStruct(raw, schema); err != nil {
		return fmt.Errorf("MODEL_JSON_UNPARSEABLE: %v", err)
	}
	return nil
}
