// Package pathutil splits, joins and walks up absolute paths for breadcrumb
// navigation. Paths are classified by their shape rather than by the host OS,
// so a Windows drive path is handled the same way on every platform.
package pathutil

import "strings"

// Crumb is one clickable breadcrumb segment.
type Crumb struct {
	Name string // display label
	Path string // absolute path the crumb navigates to
}

// IsSeparator reports whether c separates path elements in some path style.
// A backslash only separates elements of Windows paths; see SeparatorFor.
func IsSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// SeparatorFor returns the separator test for p. POSIX paths split on '/'
// only, since a backslash is a legal filename character there.
func SeparatorFor(p string) func(rune) bool {
	if IsWindows(p) {
		return func(r rune) bool { return r == '/' || r == '\\' }
	}
	return func(r rune) bool { return r == '/' }
}

// IsWindows reports whether p is a drive-letter or UNC path.
func IsWindows(p string) bool {
	return driveLen(p) > 0 || strings.HasPrefix(p, `\\`)
}

// Separator returns the separator rejoined segments of p should use.
func Separator(p string) string {
	if IsWindows(p) {
		return `\`
	}
	return "/"
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// driveLen returns 2 for "C:" prefixed paths, 0 otherwise.
func driveLen(p string) int {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return 2
	}
	return 0
}

// root returns the root segment of p and the remainder.
// "C:\x" -> "C:\", "x"; "/x" -> "/", "x"; `\\srv\share\x` -> `\\srv\share\`, "x".
func root(p string) (string, string) {
	if n := driveLen(p); n > 0 {
		rest := p[n:]
		for len(rest) > 0 && IsSeparator(rest[0]) {
			rest = rest[1:]
		}
		return strings.ToUpper(p[:1]) + `:\`, rest
	}
	if strings.HasPrefix(p, `\\`) {
		parts := strings.FieldsFunc(p[2:], func(r rune) bool { return r == '\\' || r == '/' })
		if len(parts) < 2 {
			return `\\` + strings.Join(parts, `\`), ""
		}
		return `\\` + parts[0] + `\` + parts[1] + `\`, strings.Join(parts[2:], `\`)
	}
	if len(p) > 0 && p[0] == '/' {
		return "/", strings.TrimLeft(p, "/")
	}
	return "", p
}

// Split breaks an absolute path into breadcrumb segments. The first segment is
// the root ("/", "C:\" or a UNC share); empty and "." elements are dropped.
func Split(p string) []string {
	if p == "" {
		return nil
	}
	r, rest := root(p)
	var segs []string
	if r != "" {
		segs = append(segs, r)
	}
	for _, s := range strings.FieldsFunc(rest, SeparatorFor(p)) {
		if s == "." {
			continue
		}
		segs = append(segs, s)
	}
	return segs
}

// Join rebuilds a path from segments produced by Split.
func Join(segs []string) string {
	if len(segs) == 0 {
		return ""
	}
	first := segs[0]
	sep := Separator(first)
	var b strings.Builder
	b.WriteString(first)
	for i, s := range segs[1:] {
		if i > 0 || !strings.HasSuffix(first, sep) {
			b.WriteString(sep)
		}
		b.WriteString(s)
	}
	return b.String()
}

// Clean normalizes p by splitting and rejoining it.
func Clean(p string) string {
	return Join(Split(p))
}

// IsRoot reports whether p has no parent.
func IsRoot(p string) bool {
	segs := Split(p)
	if len(segs) == 0 {
		return false
	}
	r, _ := root(p)
	return len(segs) == 1 && r != ""
}

// Parent returns the directory containing p. ok is false when p is a root
// ("/", "C:\") or has no absolute root.
func Parent(p string) (parent string, ok bool) {
	segs := Split(p)
	if len(segs) < 2 {
		return "", false
	}
	if r, _ := root(p); r == "" {
		return "", false
	}
	return Join(segs[:len(segs)-1]), true
}

// Equivalent reports whether a and b name the same directory. Windows paths
// compare case-insensitively.
func Equivalent(a, b string) bool {
	ca, cb := Clean(a), Clean(b)
	if IsWindows(ca) || IsWindows(cb) {
		return strings.EqualFold(ca, cb)
	}
	return ca == cb
}

// Breadcrumbs returns the cumulative crumbs for p, root first.
func Breadcrumbs(p string) []Crumb {
	segs := Split(p)
	crumbs := make([]Crumb, 0, len(segs))
	for i, s := range segs {
		crumbs = append(crumbs, Crumb{Name: s, Path: Join(segs[:i+1])})
	}
	return crumbs
}

// Base returns the last element of p, or the root itself.
func Base(p string) string {
	segs := Split(p)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
