// Package recovery extracts a batch of ideas from free-form model output.
//
// Model text nominally holds a JSON array but may be wrapped in narration or
// code fences, cut off mid-object, or carry literal escape sequences. Parse
// runs a fixed sequence of stages and stops at the first one that yields an
// array:
//
//  1. slice from the first '[' to the last ']'
//  2. parse the slice as is, then again after literal escapes are normalized
//  3. structural repair (trailing commas, unterminated strings, missing
//     openers and closers)
//  4. whitespace collapse, with a final repair of the collapsed text
package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"cappy/internal/core"
)

var (
	// ErrNoArray means the text has no '[' ... ']' span at all.
	ErrNoArray = errors.New("no JSON array found in response")
	// ErrUnrepairable means every stage failed to produce a JSON array.
	ErrUnrepairable = errors.New("response JSON could not be repaired")
	// ErrElementDecode marks a single array element that was dropped.
	ErrElementDecode = errors.New("idea element could not be decoded")
)

// Recover returns at most n ideas decoded from raw, in the order the model gave
// them. Any failure yields an empty result.
func Recover(raw string, n int) []core.Idea {
	ideas, _ := Parse(raw, n)
	if ideas == nil {
		return []core.Idea{}
	}
	return ideas
}

// Parse is Recover with the failure reported. When some elements were dropped
// the decoded ideas are returned together with an error wrapping
// ErrElementDecode for each dropped element.
func Parse(raw string, n int) ([]core.Idea, error) {
	elements, err := extractArray(raw)
	if err != nil {
		return nil, err
	}
	return decodeIdeas(elements, n)
}

func extractArray(raw string) ([]json.RawMessage, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < 0 || end < start {
		return nil, ErrNoArray
	}
	sliced := raw[start : end+1]

	if elements, ok := parseArray(sliced); ok {
		return elements, nil
	}

	normalized := normalizeEscapes(sliced)
	if elements, ok := parseArray(normalized); ok {
		return elements, nil
	}

	candidates := []string{normalized}
	// Output cut off inside a nested array leaves a last ']' that is not the
	// array's own closer; repair everything after the first '[' instead.
	if tail := strings.TrimRightFunc(raw[end+1:], unicode.IsSpace); tail != "" && scan(normalized).unbalanced() {
		openEnded := normalizeEscapes(strings.TrimRightFunc(raw[start:], unicode.IsSpace))
		candidates = []string{openEnded, normalized}
	}

	for _, c := range candidates {
		if elements, ok := parseArray(scan(c).repaired()); ok {
			return elements, nil
		}
	}

	for _, c := range candidates {
		collapsed := collapseWhitespace(c)
		if elements, ok := parseArray(collapsed); ok {
			return elements, nil
		}
		if elements, ok := parseArray(scan(collapsed).repaired()); ok {
			return elements, nil
		}
	}

	return nil, ErrUnrepairable
}

func parseArray(text string) ([]json.RawMessage, bool) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, false
	}
	// a literal null decodes into a nil slice without error
	if elements == nil {
		return nil, false
	}
	return elements, true
}

// normalizeEscapes turns literal escape sequences into the characters they
// name. The replacements run in sequence, so their order matters.
func normalizeEscapes(text string) string {
	text = strings.ReplaceAll(text, `\r\n`, "\n")
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, `\t`, "\t")
	text = strings.ReplaceAll(text, `\r`, "\r")
	text = strings.ReplaceAll(text, `\"`, `"`)
	text = strings.ReplaceAll(text, `\\`, `\`)
	return text
}

// collapseWhitespace joins all non-empty trimmed lines into a single line.
func collapseWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", " ")

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		b.WriteString(strings.TrimSpace(line))
	}
	return b.String()
}

// structure is the result of scanning text for bracket balance. Only
// characters outside quoted strings count.
type structure struct {
	body            []byte // input with stray trailing commas removed
	open            []byte // unmatched openers, innermost last
	missingBraces   int    // '}' seen with nothing left to close
	missingBrackets int    // ']' seen with nothing left to close
	inString        bool
	escaped         bool
}

func scan(text string) structure {
	s := structure{body: make([]byte, 0, len(text)+8)}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if s.inString {
			switch {
			case s.escaped:
				s.escaped = false
			case ch == '\\':
				s.escaped = true
			case ch == '"':
				s.inString = false
			}
			s.body = append(s.body, ch)
			continue
		}

		switch ch {
		case '"':
			s.inString = true
		case '{', '[':
			s.open = append(s.open, ch)
		case '}', ']':
			s.body = dropTrailingComma(s.body)
			switch {
			case len(s.open) > 0:
				s.open = s.open[:len(s.open)-1]
			case ch == '}':
				s.missingBraces++
			default:
				s.missingBrackets++
			}
		}
		s.body = append(s.body, ch)
	}

	return s
}

func (s structure) unbalanced() bool {
	return len(s.open) > 0 || s.missingBraces > 0 || s.missingBrackets > 0 || s.inString
}

// repaired closes what the scan left open and prepends the openers that were
// never seen.
func (s structure) repaired() string {
	body := append([]byte(nil), s.body...)

	if s.inString {
		if s.escaped {
			body = body[:len(body)-1]
		}
		body = append(body, '"')
	}
	body = dropTrailingComma(body)

	for i := len(s.open) - 1; i >= 0; i-- {
		if s.open[i] == '{' {
			body = append(body, '}')
		} else {
			body = append(body, ']')
		}
	}

	return strings.Repeat("[", s.missingBrackets) + strings.Repeat("{", s.missingBraces) + string(body)
}

func dropTrailingComma(b []byte) []byte {
	i := len(b)
	for i > 0 && isSpace(b[i-1]) {
		i--
	}
	if i > 0 && b[i-1] == ',' {
		return append(b[:i-1], b[i:]...)
	}
	return b
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func decodeIdeas(elements []json.RawMessage, n int) ([]core.Idea, error) {
	ideas := make([]core.Idea, 0, min(max(n, 0), len(elements)))
	var errs []error

	for i, raw := range elements {
		if len(ideas) >= n {
			break
		}
		idea, err := decodeIdea(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		ideas = append(ideas, idea)
	}

	return ideas, errors.Join(errs...)
}

func decodeIdea(raw json.RawMessage) (core.Idea, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return core.Idea{}, fmt.Errorf("%w: not an object", ErrElementDecode)
	}

	difficulty, err := intField(fields, "difficulty")
	if err != nil {
		return core.Idea{}, err
	}
	minutes, err := intField(fields, "estimatedMinutes")
	if err != nil {
		return core.Idea{}, err
	}

	category := core.CategoryQuestion
	if name, ok := stringValue(fields["category"]); ok {
		if c, found := core.ParseCategory(name); found {
			category = c
		}
	}

	return core.Idea{
		ID:               textField(fields["id"]),
		Title:            textField(fields["title"]),
		Description:      textField(fields["description"]),
		Category:         category,
		Tags:             tagsField(fields["tags"]),
		Difficulty:       difficulty,
		EstimatedMinutes: minutes,
	}, nil
}

func stringValue(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// textField reads a string, keeping the literal text of any other scalar.
// Missing and null values are empty.
func textField(raw json.RawMessage) string {
	if s, ok := stringValue(raw); ok {
		return s
	}
	literal := strings.TrimSpace(string(raw))
	if literal == "null" {
		return ""
	}
	return literal
}

func tagsField(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	tags := make([]string, len(items))
	for i, item := range items {
		tags[i], _ = stringValue(item)
	}
	return tags
}

func intField(fields map[string]json.RawMessage, name string) (int, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrElementDecode, name)
	}

	literal := strings.TrimSpace(string(raw))
	if literal == "" || (literal[0] != '-' && (literal[0] < '0' || literal[0] > '9')) {
		return 0, fmt.Errorf("%w: %s is not a number: %s", ErrElementDecode, name, literal)
	}
	if v, err := strconv.Atoi(literal); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s is not an integer: %s", ErrElementDecode, name, literal)
	}
	return int(f), nil
}
