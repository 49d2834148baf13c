package security

import (
	"path"
	"strings"
)

const subtreeSuffix = "/**"

// PathMatcher matches request paths against exact paths and "/prefix/**" subtrees.
type PathMatcher struct {
	exact    map[string]struct{}
	subtrees []string
}

// NewPathMatcher compiles patterns. "/css/**" matches "/css" and everything
// below it; "/**" matches every path; anything else must match exactly.
func NewPathMatcher(patterns []string) *PathMatcher {
	m := &PathMatcher{exact: make(map[string]struct{})}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if base, ok := strings.CutSuffix(p, subtreeSuffix); ok {
			m.subtrees = append(m.subtrees, base)
			continue
		}
		m.exact[p] = struct{}{}
	}
	return m
}

// Match reports whether p (already cleaned) is covered by any pattern.
func (m *PathMatcher) Match(p string) bool {
	if _, ok := m.exact[p]; ok {
		return true
	}
	for _, base := range m.subtrees {
		if base == "" || p == base || strings.HasPrefix(p, base+"/") {
			return true
		}
	}
	return false
}

// cleanPath resolves dot segments so "/api/auth/../v1/users" is classified as
// the path it routes to.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
