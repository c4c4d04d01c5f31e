// Package seealso discovers references for the manual's SEE ALSO section
// from the working directory, currently the git remote origin URL.
package seealso

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// RepositoryURL returns the [remote "origin"] url from dir's .git/config,
// or the empty string when none can be found. Discovery is best-effort;
// a missing repository just omits the SEE ALSO entry.
func RepositoryURL(dir string) string {
	f, err := os.Open(filepath.Join(dir, ".git", "config"))
	if err != nil {
		return ""
	}
	defer f.Close()

	inOrigin := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, `[remote "origin"]`):
			inOrigin = true
		case strings.HasPrefix(line, "["):
			inOrigin = false
		case inOrigin && strings.HasPrefix(line, "url"):
			if _, url, ok := strings.Cut(line, "="); ok {
				return strings.TrimSpace(url)
			}
		}
	}
	return ""
}
