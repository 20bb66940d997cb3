package advice

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// jsonObject grabs everything from the first '{' to the last '}'.
var jsonObject = regexp.MustCompile(`(\{[\s\S]*\})`)

const replySchema = `{
  "type": "object",
  "properties": {
    "health_risks":      {"type": ["array", "string"], "items": {"type": "string"}},
    "quit_strategies":   {"type": ["array", "string"], "items": {"type": "string"}},
    "recovery_timeline": {"type": ["object", "string"]},
    "medical_stats":     {"type": ["array", "string"], "items": {"type": "string"}},
    "motivation":        {"type": "string"}
  },
  "anyOf": [
    {"required": ["health_risks"]},
    {"required": ["quit_strategies"]},
    {"required": ["recovery_timeline"]},
    {"required": ["medical_stats"]},
    {"required": ["motivation"]}
  ]
}`

var replySchemaLoader = gojsonschema.NewStringLoader(replySchema)

var errNoJSON = errors.New("reply holds no JSON object")

// parseReply extracts structured advice from free text. It returns an error
// when no advice-shaped JSON object can be recovered.
func parseReply(raw string) (Response, error) {
	match := jsonObject.FindString(raw)
	if match == "" {
		return Response{}, errNoJSON
	}
	if err := validateReply(match); err != nil {
		return Response{}, err
	}

	var wire struct {
		HealthRisks      json.RawMessage `json:"health_risks"`
		QuitStrategies   json.RawMessage `json:"quit_strategies"`
		RecoveryTimeline json.RawMessage `json:"recovery_timeline"`
		MedicalStats     json.RawMessage `json:"medical_stats"`
		Motivation       string          `json:"motivation"`
	}
	if err := json.Unmarshal([]byte(match), &wire); err != nil {
		return Response{}, err
	}

	risks, err := coerceStringArray(wire.HealthRisks)
	if err != nil {
		return Response{}, err
	}
	strategies, err := coerceStringArray(wire.QuitStrategies)
	if err != nil {
		return Response{}, err
	}
	stats, err := coerceStringArray(wire.MedicalStats)
	if err != nil {
		return Response{}, err
	}
	timeline, err := coerceTimeline(wire.RecoveryTimeline)
	if err != nil {
		return Response{}, err
	}
	return Response{
		HealthRisks:      normalizeList(risks),
		QuitStrategies:   normalizeList(strategies),
		RecoveryTimeline: timeline,
		MedicalStats:     normalizeList(stats),
		Motivation:       strings.TrimSpace(wire.Motivation),
	}, nil
}

func validateReply(doc string) error {
	result, err := gojsonschema.Validate(replySchemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("reply does not match advice shape: %s", strings.Join(msgs, "; "))
}

func coerceStringArray(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, err
		}
		if strings.TrimSpace(single) == "" {
			return nil, nil
		}
		return []string{single}, nil
	case '[':
		var many []string
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, err
		}
		return many, nil
	default:
		return nil, errors.New("unsupported advice array format")
	}
}

// coerceTimeline accepts an object of labels to descriptions (non-string
// values are formatted) or a single string.
func coerceTimeline(raw json.RawMessage) (map[string]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '"' {
		var note string
		if err := json.Unmarshal(raw, &note); err != nil {
			return nil, err
		}
		if strings.TrimSpace(note) == "" {
			return nil, nil
		}
		return map[string]string{timelineNoteKey: strings.TrimSpace(note)}, nil
	}
	var entries map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for label, v := range entries {
		label = strings.TrimSpace(label)
		if label == "" || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				out[label] = s
			}
		default:
			out[label] = fmt.Sprint(val)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{})
	for _, item := range items {
		clean := strings.TrimSpace(item)
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
