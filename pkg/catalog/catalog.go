// Package catalog holds the named repositories source paths resolve
// against.
package catalog

import (
	"github.com/pkg/errors"

	"ridgeline.dev/cairn/pkg/sourcepath"
)

var (
	ErrNotFound = errors.New("repository not found")
	ErrExists   = errors.New("repository already registered")
)

// WorkspaceAgent is an agent that owns a workspace directory, where
// repositories without an explicit root get checked out.
type WorkspaceAgent interface {
	sourcepath.Agent

	WorkspaceDir() string
}

// Repository is one catalog entry. Root pins the checkout to a fixed
// directory; without it the checkout lives under the agent workspace
// in a directory named after the url.
type Repository struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Root string `json:"root,omitempty"`
}

// ResolveRoot returns where the repository lives on a. An explicit
// Root wins, otherwise the checkout sits in the agent workspace under
// a directory named after the url.
func (r *Repository) ResolveRoot(a sourcepath.Agent) (string, error) {
	if r.Root != "" {
		return r.Root, nil
	}

	if r.URL == "" {
		return "", errors.Errorf("repository %s has neither root nor url", r.Name)
	}

	wa, ok := a.(WorkspaceAgent)
	if !ok {
		return "", errors.Errorf("agent has no workspace to hold repository %s", r.Name)
	}

	dir, err := sourcepath.BuildPathFromURL(r.URL)
	if err != nil {
		return "", err
	}

	return wa.CombinePath(wa.WorkspaceDir(), dir), nil
}

type source struct {
	r *Repository
}

var _ sourcepath.Repository = source{}

func (s source) Name() string {
	return s.r.Name
}

func (s source) RootPath(a sourcepath.Agent) (string, error) {
	return s.r.ResolveRoot(a)
}

// Catalog is an ordered set of repositories. Order matters: a spec
// that names no repository resolves against the first entry.
type Catalog struct {
	repos []*Repository
}

func New(repos ...*Repository) *Catalog {
	return &Catalog{repos: repos}
}

func (c *Catalog) Add(r *Repository) error {
	for _, have := range c.repos {
		if have.Name == r.Name {
			return errors.Wrap(ErrExists, r.Name)
		}
	}

	c.repos = append(c.repos, r)

	return nil
}

func (c *Catalog) Lookup(name string) (*Repository, error) {
	for _, r := range c.repos {
		if r.Name == name {
			return r, nil
		}
	}

	return nil, errors.Wrap(ErrNotFound, name)
}

func (c *Catalog) First() (*Repository, error) {
	if len(c.repos) == 0 {
		return nil, ErrNotFound
	}

	return c.repos[0], nil
}

func (c *Catalog) Len() int {
	return len(c.repos)
}

func (c *Catalog) All() []*Repository {
	return c.repos
}

// Sources exposes the catalog in the form Parse consumes.
func (c *Catalog) Sources() []sourcepath.Repository {
	out := make([]sourcepath.Repository, len(c.repos))
	for i, r := range c.repos {
		out[i] = source{r: r}
	}

	return out
}

// Resolve parses spec against this catalog and resolves it onto a.
func (c *Catalog) Resolve(spec string, a sourcepath.Agent) (*sourcepath.SourcePath, error) {
	return sourcepath.Parse(spec, c.Sources(), a)
}
