package scoring

import "strings"

// ExtractJSONObject locates the first top-level JSON object in text that may
// contain surrounding prose, returning the balanced {...} region. Braces
// inside JSON strings (and escaped quotes inside those strings) are ignored
// when balancing. Scoring services routinely wrap their JSON in commentary;
// this is the defined best-effort extraction step before parsing.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], nil
				}
			}
		}
	}

	return "", ErrNoJSONObject
}
