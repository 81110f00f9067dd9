// Package agent describes the machine that source paths resolve onto.
//
// Resolution only needs one thing from an agent: how it joins paths.
// The local agent defers to the host filesystem rules, a static agent
// carries a fixed separator so paths can be computed for a machine the
// resolver is not running on.
package agent

import (
	"path/filepath"
	"strings"
)

// Local is an agent on this machine. Paths are combined with the host
// filesystem conventions and repositories without an explicit root are
// checked out under the workspace directory.
type Local struct {
	dir string
}

func NewLocal(workspaceDir string) *Local {
	return &Local{dir: workspaceDir}
}

func (l *Local) CombinePath(base, rel string) string {
	return filepath.Join(base, rel)
}

func (l *Local) WorkspaceDir() string {
	return l.dir
}

// Static is an agent with a fixed separator and workspace. It never
// consults the host, so it can describe a build machine running a
// different OS than the resolver.
type Static struct {
	Sep string
	Dir string
}

func (s *Static) CombinePath(base, rel string) string {
	if rel == "" {
		return base
	}

	if base == "" {
		return rel
	}

	return strings.TrimSuffix(base, s.Sep) + s.Sep + rel
}

func (s *Static) WorkspaceDir() string {
	return s.Dir
}
