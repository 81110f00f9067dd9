package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"ridgeline.dev/cairn/pkg/agent"
	"ridgeline.dev/cairn/pkg/catalog"
)

type Config struct {
	path      string
	configDir string

	// Actual Config
	WorkspaceDir string                `json:"workspace-dir"`
	Repositories []*catalog.Repository `json:"repositories"`
}

const (
	DefaultConfigPath   = "~/.config/cairn/config.json"
	DefaultWorkspaceDir = "~/.cairn/workspace"
)

func LoadConfig() (*Config, error) {
	if loc := os.Getenv("CAIRN_CONFIG"); loc != "" {
		return loadFile(loc)
	}

	path, err := homedir.Expand(DefaultConfigPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return loadFile(path)
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}

	workspace, err := homedir.Expand(DefaultWorkspaceDir)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		path:      path,
		configDir: dir,

		WorkspaceDir: workspace,
	}

	return updateFromEnv(cfg)
}

func loadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	var cfg Config

	err = json.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return nil, err
	}

	cfg.path = path
	cfg.configDir = filepath.Dir(path)

	if cfg.WorkspaceDir == "" {
		workspace, err := homedir.Expand(DefaultWorkspaceDir)
		if err != nil {
			return nil, err
		}

		cfg.WorkspaceDir = workspace
	} else {
		workspace, err := homedir.Expand(cfg.WorkspaceDir)
		if err != nil {
			return nil, err
		}

		cfg.WorkspaceDir = workspace
	}

	return updateFromEnv(&cfg)
}

func updateFromEnv(cfg *Config) (*Config, error) {
	if path := os.Getenv("CAIRN_WORKSPACE"); path != "" {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !fi.IsDir() {
			return nil, fmt.Errorf("path is not a directory: %s", path)
		}

		cfg.WorkspaceDir = path
	}

	if repos := os.Getenv("CAIRN_REPOS"); repos != "" {
		cfg.Repositories = append(parseRepos(repos), cfg.Repositories...)
	}

	return ensureDirs(cfg)
}

// parseRepos reads the comma separated name=url entries CAIRN_REPOS
// carries. An entry with no = is a url alone, addressable only as the
// default repository.
func parseRepos(list string) []*catalog.Repository {
	var repos []*catalog.Repository

	for _, part := range strings.Split(list, ",") {
		if part == "" {
			continue
		}

		idx := strings.IndexByte(part, '=')
		if idx == -1 {
			repos = append(repos, &catalog.Repository{URL: part})
		} else {
			repos = append(repos, &catalog.Repository{
				Name: part[:idx],
				URL:  part[idx+1:],
			})
		}
	}

	return repos
}

func ensureDirs(cfg *Config) (*Config, error) {
	dirs := []string{
		cfg.WorkspaceDir,
		cfg.VcsCachePath(),
	}

	for _, dir := range dirs {
		fi, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				err = os.MkdirAll(dir, 0755)
				if err != nil {
					return nil, err
				}
			}
		} else if !fi.IsDir() {
			return nil, fmt.Errorf("path is not a directory: %s", dir)
		}
	}

	return cfg, nil
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) VcsCachePath() string {
	return filepath.Join(c.WorkspaceDir, "cache", "vcs")
}

// Catalog builds the repository catalog the config describes. Named
// entries must be unique, unnamed ones ride on their position. Urls
// are normalized, so entries can use shorthand like github.com/org/x.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	seen := map[string]bool{}

	for _, r := range c.Repositories {
		if r.Name != "" {
			if seen[r.Name] {
				return nil, fmt.Errorf("repository configured twice: %s", r.Name)
			}

			seen[r.Name] = true
		}

		if r.URL != "" {
			u, err := catalog.NormalizeURL(r.URL)
			if err != nil {
				return nil, fmt.Errorf("repository %s: %s", r.Name, err)
			}

			r.URL = u
		}
	}

	return catalog.New(c.Repositories...), nil
}

func (c *Config) Agent() *agent.Local {
	return agent.NewLocal(c.WorkspaceDir)
}

func (c *Config) Save() error {
	f, err := os.Create(c.path)
	if err != nil {
		return err
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	return enc.Encode(c)
}
