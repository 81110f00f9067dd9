package sourcepath

import "strings"

// BuildSourcePath composes a specification string from discrete fields.
// No catalog is consulted. An empty repository name yields the empty
// specification; an empty branch yields the repository name alone.
//
// The relative path handed in here carries the repository's own directory
// as its first segment (that is how the paths arrive from tree pickers),
// and the repository name already identifies that directory, so the first
// segment is dropped. Parse never does this; it only trims a single
// leading slash character. The two sides are deliberately not symmetric.
func BuildSourcePath(repoName, branch, relativePath string) string {
	if repoName == "" {
		return ""
	}

	if branch == "" {
		return repoName
	}

	return repoName + "|" + branch + ":" + stripLeadingSegment(relativePath)
}

// stripLeadingSegment drops everything up to and including the first '/'.
// A path with no slash is a single segment and strips to nothing.
func stripLeadingSegment(p string) string {
	idx := strings.IndexByte(p, '/')
	if idx == -1 {
		return ""
	}

	return p[idx+1:]
}
