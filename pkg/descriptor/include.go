package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// includePattern matches `#include "file"` preprocessing lines. The
// leading whitespace capture carries the indentation of the include
// site, which is re-applied to every included line so the YAML keeps
// its nesting level.
var includePattern = regexp.MustCompile(`(?m)^.*?([\t ]*)#[\t ]*include[\t ]*"([^<>\s]+)"$`)

// expandIncludes resolves include directives in a descriptor source,
// reading referenced files relative to dir. Includes do not nest.
func expandIncludes(src []byte, dir string) ([]byte, error) {
	var includeErr error
	expanded := includePattern.ReplaceAllFunc(src, func(match []byte) []byte {
		groups := includePattern.FindSubmatch(match)
		indent, file := string(groups[1]), string(groups[2])
		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			if includeErr == nil {
				includeErr = fmt.Errorf("resolving include %q: %w", file, err)
			}
			return match
		}
		lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
		for i, line := range lines {
			lines[i] = indent + line
		}
		return []byte(strings.Join(lines, "\n"))
	})
	if includeErr != nil {
		return nil, includeErr
	}
	return expanded, nil
}
