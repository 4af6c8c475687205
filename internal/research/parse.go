package research

import "strings"

// stripCodeFence removes a surrounding markdown code fence. The backend is
// not schema-constrained and frequently wraps JSON output in ``` fences
// despite instructions not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line (``` or ```json).
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}

	// Drop the closing fence if present.
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
