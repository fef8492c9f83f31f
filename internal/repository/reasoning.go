package repository

import (
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Reasoning is free-form JSON produced by the similarity job. Routing it
// through structpb rejects values that have no JSON representation.
func encodeReasoning(reasoning map[string]any) (string, error) {
	if len(reasoning) == 0 {
		return "{}", nil
	}
	s, err := structpb.NewStruct(reasoning)
	if err != nil {
		return "", fmt.Errorf("invalid reasoning: %w", err)
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode reasoning: %w", err)
	}
	return string(b), nil
}

func decodeReasoning(raw string) (map[string]any, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var s structpb.Struct
	if err := protojson.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to decode reasoning: %w", err)
	}
	return s.AsMap(), nil
}

func encodeChampions(champions []string) (string, error) {
	if len(champions) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(champions)
	if err != nil {
		return "", fmt.Errorf("failed to encode shared champions: %w", err)
	}
	return string(b), nil
}

func decodeChampions(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var champions []string
	if err := json.Unmarshal([]byte(raw), &champions); err != nil {
		return nil, fmt.Errorf("failed to decode shared champions: %w", err)
	}
	return champions, nil
}
