package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shape is the JSON shape a caller expects from a model reply.
type Shape int

const (
	ShapeObject Shape = iota
	ShapeArray
)

// ParseError reports a failed JSON extraction. Offset is the byte position
// of the parse failure within the candidate substring, -1 when unknown.
type ParseError struct {
	Reason string
	Offset int
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("json extraction failed at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("json extraction failed: %s", e.Reason)
}

// ExtractJSON pulls the first balanced JSON value of the expected shape out
// of a free-form model reply: strips one layer of code fences, locates the
// balanced {...} or [...] substring, parses it, and on failure applies one
// remediation pass before giving up.
func ExtractJSON(reply string, shape Shape) ([]byte, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, &ParseError{Reason: "empty", Offset: -1}
	}

	reply = stripFence(reply)

	candidate := firstBalanced(reply, shape)
	if candidate == "" {
		// An object reply can still satisfy an expected array via wrapping.
		if shape == ShapeArray {
			if obj := firstBalanced(reply, ShapeObject); obj != "" {
				candidate = "[" + obj + "]"
			}
		}
		if candidate == "" {
			return nil, &ParseError{Reason: "no balanced JSON value found", Offset: -1}
		}
	}

	if json.Valid([]byte(candidate)) {
		return []byte(candidate), nil
	}

	// Remediation pass: escape stray quotes inside quoted strings, then
	// retry. A dangling object for an expected array was handled above.
	repaired := escapeStrayQuotes(candidate)
	if json.Valid([]byte(repaired)) {
		return []byte(repaired), nil
	}

	offset := firstInvalidOffset(candidate)
	return nil, &ParseError{Reason: "invalid JSON after remediation", Offset: offset}
}

// Unmarshal extracts and decodes in one step.
func Unmarshal(reply string, shape Shape, v any) error {
	raw, err := ExtractJSON(reply, shape)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ParseError{Reason: err.Error(), Offset: -1}
	}
	return nil
}

// stripFence removes one layer of ``` or ```json fencing.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := s[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		tag := strings.TrimSpace(body[:nl])
		if tag == "" || strings.EqualFold(tag, "json") {
			body = body[nl+1:]
		}
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

// firstBalanced returns the first balanced {...} or [...] substring,
// respecting string literals and escapes.
func firstBalanced(s string, shape Shape) string {
	open, closing := byte('{'), byte('}')
	if shape == ShapeArray {
		open, closing = '[', ']'
	}

	start := strings.IndexByte(s, open)
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// literal content
		case c == open:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// escapeStrayQuotes escapes double quotes that appear inside an
// already-open string literal but are followed by a character that cannot
// legally follow a closing quote. This repairs the common model mistake of
// quoting phrases inside JSON string values.
func escapeStrayQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			if inString && !legalAfterClosingQuote(s, i+1) {
				b.WriteString(`\"`)
				continue
			}
			inString = !inString
		}
		b.WriteByte(c)
	}
	return b.String()
}

// legalAfterClosingQuote reports whether the next non-space character could
// legally follow a string close in JSON.
func legalAfterClosingQuote(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', '}', ']', ':':
			return true
		default:
			return false
		}
	}
	return true
}

// firstInvalidOffset finds the approximate byte offset where decoding fails.
func firstInvalidOffset(s string) int {
	dec := json.NewDecoder(strings.NewReader(s))
	for {
		if _, err := dec.Token(); err != nil {
			if serr, ok := err.(*json.SyntaxError); ok {
				return int(serr.Offset)
			}
			return int(dec.InputOffset())
		}
	}
}
