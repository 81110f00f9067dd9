package catalog

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"ridgeline.dev/cairn/pkg/progress"
)

// MarkerFile pins a directory's catalog entry. A checkout that is not
// a git working copy, or whose remote derives the wrong name, carries
// one with the name and url to use instead.
const MarkerFile = ".cairn-repo.json"

var scpSyntaxRe = regexp.MustCompile(`^([a-zA-Z0-9_]+)@([a-zA-Z0-9._-]+):(.*)$`)

func remoteRepoID(remote string) (string, error) {
	if m := scpSyntaxRe.FindStringSubmatch(remote); m != nil {
		return strings.TrimSuffix(m[2]+"/"+m[3], ".git"), nil
	}

	u, err := url.Parse(remote)
	if err != nil {
		return "", errors.Wrapf(err, "parsing remote %s", remote)
	}

	return strings.TrimSuffix(path.Join(u.Host, u.Path), ".git"), nil
}

type Detector struct {
	logger hclog.Logger
	known  map[string]*Repository
}

func NewDetector(logger hclog.Logger) *Detector {
	return &Detector{logger: logger}
}

func (d *Detector) L() hclog.Logger {
	if d.logger != nil {
		return d.logger
	}

	d.logger = hclog.L()

	return d.logger
}

// Detect builds a catalog entry for an existing checkout. A marker
// file wins, then the origin remote, then the directory name. Results
// are memoized per directory.
func (d *Detector) Detect(dir string) (*Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if entry, ok := d.known[abs]; ok {
		return entry, nil
	}

	entry, err := d.detect(abs)
	if err != nil {
		return nil, err
	}

	if d.known == nil {
		d.known = make(map[string]*Repository)
	}

	d.known[abs] = entry

	return entry, nil
}

func (d *Detector) detect(abs string) (*Repository, error) {
	entry := &Repository{
		Name: filepath.Base(abs),
		Root: abs,
	}

	f, err := os.Open(filepath.Join(abs, MarkerFile))
	if err == nil {
		defer f.Close()

		var marked Repository

		err = json.NewDecoder(f).Decode(&marked)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", MarkerFile)
		}

		if marked.Name != "" {
			entry.Name = marked.Name
		}

		entry.URL = marked.URL

		return entry, nil
	}

	r, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return entry, nil
		}

		return nil, errors.Wrapf(err, "opening %s", abs)
	}

	remote, err := r.Remote("origin")
	if err != nil {
		if err == git.ErrRemoteNotFound {
			return entry, nil
		}

		return nil, err
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return entry, nil
	}

	entry.URL = urls[0]

	id, err := remoteRepoID(urls[0])
	if err != nil {
		d.L().Trace("cannot derive a name from the remote", "url", urls[0], "error", err)
		return entry, nil
	}

	if base := path.Base(id); base != "" && base != "." && base != "/" {
		entry.Name = base
	}

	return entry, nil
}

// Scan walks the direct children of root and returns an entry for
// every git checkout or marked directory it finds.
func (d *Detector) Scan(ctx context.Context, root string) ([]*Repository, error) {
	entries, err := ioutil.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", root)
	}

	bar := progress.Count(ctx, int64(len(entries)), "scan repositories")
	defer bar.Close()

	var found []*Repository

	for _, fi := range entries {
		bar.Tick()

		if !fi.IsDir() {
			continue
		}

		dir := filepath.Join(root, fi.Name())

		if !hasMarker(dir) {
			if _, err := git.PlainOpen(dir); err != nil {
				if err == git.ErrRepositoryNotExists {
					d.L().Trace("skipping non-repository directory", "dir", dir)
					continue
				}

				return nil, errors.Wrapf(err, "opening %s", dir)
			}
		}

		entry, err := d.Detect(dir)
		if err != nil {
			return nil, err
		}

		d.L().Debug("detected repository", "name", entry.Name, "url", entry.URL)

		found = append(found, entry)
	}

	return found, nil
}

func hasMarker(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil
}
