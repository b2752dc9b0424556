package database

import (
	"encoding/json"
	"fmt"
)

// Array-valued fields are stored as JSON text columns, sqlite's substitute
// for native array types.

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode string array: %w", err)
	}
	return string(data), nil
}

func decodeStrings(data string) ([]string, error) {
	if data == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("failed to decode string array: %w", err)
	}
	return values, nil
}

func encodeInts(values []int) (string, error) {
	if values == nil {
		values = []int{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode int array: %w", err)
	}
	return string(data), nil
}

func decodeInts(data string) ([]int, error) {
	if data == "" {
		return []int{}, nil
	}
	var values []int
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("failed to decode int array: %w", err)
	}
	return values, nil
}

func encodeStringMap(values map[string]string) (string, error) {
	if values == nil {
		values = map[string]string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode string map: %w", err)
	}
	return string(data), nil
}

func decodeStringMap(data string) (map[string]string, error) {
	if data == "" {
		return map[string]string{}, nil
	}
	var values map[string]string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("failed to decode string map: %w", err)
	}
	return values, nil
}
