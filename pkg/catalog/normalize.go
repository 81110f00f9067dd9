package catalog

import (
	"strings"

	getter "github.com/hashicorp/go-getter"
	"github.com/pkg/errors"
)

// NormalizeURL expands shorthand like github.com/org/repo into a url a
// vcs client can fetch, using the same detection rules terraform
// applies to module sources.
func NormalizeURL(raw string) (string, error) {
	src, err := getter.Detect(raw, "", getter.Detectors)
	if err != nil {
		return "", errors.Wrapf(err, "detecting source url of %s", raw)
	}

	// Drop the forcing token, these only ever go to git.
	if idx := strings.Index(src, "::"); idx != -1 {
		src = src[idx+2:]
	}

	return src, nil
}
