// Package pathutil implements the path-string contract that arbortree
// treats as an external collaborator: parsing, validation, splitting into
// components, and computing common-prefix depth.
//
// A valid path is "/" or "/(name/)+", where each name is 1..MaxNameLength
// bytes of permitted characters, and the path always ends in "/". There is
// no "." or ".." resolution: paths here are not filesystem paths, they are
// pure tree addresses.
package pathutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
)

// MaxNameLength is the default maximum length of a single folder name.
// Override it (and the permitted character set) at runtime with Configure,
// which arbor/config wires to a live-reloadable tunables file.
const MaxNameLength = 255

var nameRegexp atomic.Value // holds *regexp.Regexp

func init() {
	nameRegexp.Store(mustCompile(`[a-z0-9_-]`, MaxNameLength))
}

func mustCompile(charClass string, maxLen int) *regexp.Regexp {
	return regexp.MustCompile(`^` + charClass + `{1,` + strconv.Itoa(maxLen) + `}$`)
}

// Configure overrides the permitted per-component character class and
// maximum length used by IsValid. charClass is a regexp character class
// body, e.g. "[a-z0-9_-]". Safe for concurrent use; a reload takes effect
// for validations that start after it completes.
func Configure(charClass string, maxLen int) error {
	compiled, err := regexp.Compile(`^` + charClass + `{1,` + strconv.Itoa(maxLen) + `}$`)
	if err != nil {
		return fmt.Errorf("pathutil: invalid character class %q: %w", charClass, err)
	}
	nameRegexp.Store(compiled)
	return nil
}

// IsValid reports whether p matches "/" or "/(name/)+".
func IsValid(p string) bool {
	if p == "/" {
		return true
	}
	if len(p) < 2 || p[0] != '/' || p[len(p)-1] != '/' {
		return false
	}
	re := nameRegexp.Load().(*regexp.Regexp)
	for _, name := range strings.Split(p[1:len(p)-1], "/") {
		if !re.MatchString(name) {
			return false
		}
	}
	return true
}

// SplitFirst consumes the first component after the leading "/", returning
// it plus the remaining suffix path (which still begins with "/"). ok is
// false when p is "/" (no remaining components).
func SplitFirst(p string) (component, rest string, ok bool) {
	if p == "/" {
		return "", "", false
	}
	body := p[1:]
	idx := strings.IndexByte(body, '/')
	if idx < 0 {
		// Malformed input (no trailing slash); treat the remainder as the
		// last component with nothing left over.
		return body, "/", true
	}
	return body[:idx], "/" + body[idx+1:], true
}

// SplitParent splits p into its parent path and its final component. For
// "/" it returns ok == false. For "/a/b/c/" it returns ("/a/b/", "c", true).
func SplitParent(p string) (parent, last string, ok bool) {
	if p == "/" {
		return "", "", false
	}
	body := p[1 : len(p)-1]
	idx := strings.LastIndexByte(body, '/')
	if idx < 0 {
		return "/", body, true
	}
	return "/" + body[:idx+1], body[idx+1:], true
}

// CountSlashes returns the number of '/' characters in p.
func CountSlashes(p string) int {
	return strings.Count(p, "/")
}

// CommonDepth returns the number of shared leading path components plus
// one, so CommonDepth("/", "/") == 1.
func CommonDepth(p, q string) int {
	pParts := componentsOf(p)
	qParts := componentsOf(q)
	depth := 1
	for i := 0; i < len(pParts) && i < len(qParts); i++ {
		if pParts[i] != qParts[i] {
			break
		}
		depth++
	}
	return depth
}

// Skip returns p with its first n leading components removed, still
// beginning with "/". Skip(p, 0) returns p unchanged.
func Skip(p string, n int) string {
	rest := p
	for i := 0; i < n; i++ {
		_, next, ok := SplitFirst(rest)
		if !ok {
			return rest
		}
		rest = next
	}
	return rest
}

// IsPrefix reports whether p is a strict prefix path of q — that is,
// whether p names an ancestor folder of q.
func IsPrefix(p, q string) bool {
	return len(p) < len(q) && strings.HasPrefix(q, p)
}

func componentsOf(p string) []string {
	if p == "/" {
		return nil
	}
	return strings.Split(p[1:len(p)-1], "/")
}
