package sourcepath

import (
	"strings"

	"github.com/pkg/errors"
)

// Parse resolves a specification string against an ordered repository
// catalog. An empty specification resolves to the zero SourcePath without
// touching the catalog. A specification that names no repository resolves
// to the catalog's first entry.
func Parse(spec string, repos []Repository, agent Agent) (*SourcePath, error) {
	if spec == "" {
		return &SourcePath{}, nil
	}

	name, branch, rel, ok := splitSpec(spec)
	if !ok {
		return nil, ErrMalformedSpec
	}

	// A single leading slash on the path is noise, not a segment.
	if strings.HasPrefix(rel, "/") {
		rel = rel[1:]
	}

	var repo Repository

	if name != "" {
		for _, r := range repos {
			if r.Name() == name {
				repo = r
				break
			}
		}

		if repo == nil {
			return nil, &UnknownRepositoryError{Name: name}
		}
	} else {
		if len(repos) == 0 {
			return nil, ErrNoRepositories
		}

		repo = repos[0]
	}

	root, err := repo.RootPath(agent)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving root of repository %s", repo.Name())
	}

	return &SourcePath{
		repo:   repo,
		branch: branch,
		rel:    rel,
		disk:   agent.CombinePath(root, rel),
	}, nil
}

// splitSpec carves a specification into its three segments. The repository
// name is everything before the first '|'. A branch is only captured when
// a ':' follows the '|'; without one, the text after the '|' is all path.
// A ':' before the first '|' belongs to the repository name.
func splitSpec(spec string) (name, branch, path string, ok bool) {
	pipe := strings.IndexByte(spec, '|')
	if pipe == -1 {
		return spec, "", "", true
	}

	name = spec[:pipe]
	rest := spec[pipe+1:]

	colon := strings.IndexByte(rest, ':')
	if colon == -1 {
		return name, "", rest, true
	}

	return name, rest[:colon], rest[colon+1:], true
}
