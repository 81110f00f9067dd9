// Package sourcepath implements the compact textual specification a build
// configuration uses to point at a location inside a version-controlled
// source tree: "<repo>|<branch>:<path>". It resolves specifications against
// an ordered repository catalog, rebuilds them from parts, and derives
// filesystem-safe names from remote URLs.
package sourcepath

// DefaultBranch is used whenever a specification does not name a branch.
const DefaultBranch = "master"

// Agent knows how to build paths for the machine a working copy lives on.
// The agent is not necessarily the local host; a controller may combine
// paths on behalf of an agent running elsewhere.
type Agent interface {
	CombinePath(base, rel string) string
}

// Repository is one entry of the catalog a specification resolves against.
type Repository interface {
	Name() string
	RootPath(a Agent) (string, error)
}

// SourcePath is the result of resolving a specification string. The zero
// value is the resolution of the empty specification: no repository, no
// branch, no path.
type SourcePath struct {
	repo   Repository
	branch string
	rel    string
	disk   string
}

func (s *SourcePath) Repository() Repository {
	return s.repo
}

// SpecifiedBranch returns the branch exactly as the specification named it.
// The second return is false when the specification carried no branch.
func (s *SourcePath) SpecifiedBranch() (string, bool) {
	if s.branch == "" {
		return "", false
	}

	return s.branch, true
}

// Branch returns the branch to act on. It is never empty: DefaultBranch
// stands in whenever no branch was specified.
func (s *SourcePath) Branch() string {
	if s.branch == "" {
		return DefaultBranch
	}

	return s.branch
}

func (s *SourcePath) RelativePath() string {
	return s.rel
}

// PathOnDisk is the repository root on the agent combined with the
// relative path. Empty when no repository was resolved.
func (s *SourcePath) PathOnDisk() string {
	return s.disk
}

// String renders the specification back out. It reflects what was
// specified, not what was defaulted: a path parsed without an explicit
// branch serializes as the bare repository name.
func (s *SourcePath) String() string {
	if s.repo == nil {
		return ""
	}

	if s.branch == "" {
		return s.repo.Name()
	}

	return s.repo.Name() + "|" + s.branch + ":" + s.rel
}
