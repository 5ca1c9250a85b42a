package services

import (
	"encoding/json"
	"strings"
)

// maxFallbackSubtasks caps line-scan extraction; the model is asked for 3-5
// subtasks, so anything past 5 is noise.
const maxFallbackSubtasks = 5

// ParseSubtasks converts the model's reply to an ordered subtask list. The
// reply is expected to be a JSON array of strings, but models drift: a JSON
// object wrapping the array and plain bulleted text both occur in practice.
// Decoders are tried in order and the first that yields anything wins.
func ParseSubtasks(raw string) ([]string, error) {
	if subtasks, ok := decodeStringArray(raw); ok {
		return subtasks, nil
	}
	if subtasks, ok := decodeSubtasksObject(raw); ok {
		return subtasks, nil
	}
	if subtasks := scanBulletLines(raw); len(subtasks) > 0 {
		return subtasks, nil
	}
	return nil, ErrNoSubtasks
}

// decodeStringArray accepts a bare JSON array of strings. Arrays with
// non-string elements fail the decode and fall through to the next shape.
func decodeStringArray(raw string) ([]string, bool) {
	var subtasks []string
	if err := json.Unmarshal([]byte(raw), &subtasks); err != nil {
		return nil, false
	}
	if len(subtasks) == 0 {
		return nil, false
	}
	return subtasks, true
}

// decodeSubtasksObject accepts {"subtasks": [...]} wrapping.
func decodeSubtasksObject(raw string) ([]string, bool) {
	var wrapper struct {
		Subtasks []string `json:"subtasks"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		return nil, false
	}
	if len(wrapper.Subtasks) == 0 {
		return nil, false
	}
	return wrapper.Subtasks, true
}

// scanBulletLines keeps lines that start with "-" or "*" after trimming,
// strips the marker and caps the result at maxFallbackSubtasks.
func scanBulletLines(raw string) []string {
	var subtasks []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || (line[0] != '-' && line[0] != '*') {
			continue
		}
		item := strings.TrimSpace(line[1:])
		if item == "" {
			continue
		}
		subtasks = append(subtasks, item)
		if len(subtasks) == maxFallbackSubtasks {
			break
		}
	}
	return subtasks
}
