package tasks

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// ParserSpec declares how raw model output is turned into the task's output
// fields. Two formats are supported: "json" extracts the first JSON object
// from the output and projects it onto the declared output names, and
// "regexp" maps named capture groups onto them.
type ParserSpec struct {
	Format  string `yaml:"format" json:"format"`
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Func compiles the spec into a parse function for the given output names.
func (p *ParserSpec) Func(outputs []string) (func(raw string) (map[string]any, error), error) {
	switch p.Format {
	case "json":
		return jsonParser(outputs), nil
	case "regexp":
		if p.Pattern == "" {
			return nil, fmt.Errorf("regexp parser requires a 'pattern' field")
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid parser pattern: %w", err)
		}
		return regexpParser(re, outputs), nil
	default:
		return nil, fmt.Errorf("unknown parser format %q", p.Format)
	}
}

func jsonParser(outputs []string) func(raw string) (map[string]any, error) {
	return func(raw string) (map[string]any, error) {
		object, err := extractJSONObject(raw)
		if err != nil {
			return nil, err
		}
		var parsed map[string]any
		if err := json.Unmarshal([]byte(object), &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse output JSON: %w", err)
		}
		result := make(map[string]any, len(outputs))
		for _, name := range outputs {
			value, ok := parsed[name]
			if !ok {
				return nil, fmt.Errorf("output missing field %q", name)
			}
			result[name] = value
		}
		return result, nil
	}
}

func regexpParser(re *regexp.Regexp, outputs []string) func(raw string) (map[string]any, error) {
	return func(raw string) (map[string]any, error) {
		match := re.FindStringSubmatch(raw)
		if match == nil {
			return nil, fmt.Errorf("output did not match parser pattern")
		}
		groups := make(map[string]any)
		for i, name := range re.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			groups[name] = match[i]
		}
		result := make(map[string]any, len(outputs))
		for _, name := range outputs {
			value, ok := groups[name]
			if !ok {
				return nil, fmt.Errorf("parser pattern has no capture group named %q", name)
			}
			result[name] = value
		}
		return result, nil
	}
}

// extractJSONObject finds the first top-level JSON object in content by
// counting braces from the first opening brace. Models often wrap the object
// in prose or markdown fences, so everything around it is ignored.
func extractJSONObject(content string) (string, error) {
	start := -1
	for i := 0; i < len(content); i++ {
		if content[i] == '{' {
			start = i
			break
		}
	}
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in output")
	}

	braceCount := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				braceCount++
			}
		case '}':
			if !inString {
				braceCount--
				if braceCount == 0 {
					return content[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("no matching closing brace found")
}
