package sourcepath

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// nameSafe maps every character that cannot appear in a file name on some
// supported platform to an underscore.
var nameSafe = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// BuildPathFromURL derives a stable, filesystem-safe name from a remote
// URL, suitable for naming the cache directory a repository is kept in.
// Credentials are removed; the scheme, query, and fragment do not
// participate. Running the result through again is a no-op.
func BuildPathFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(ErrMalformedURL, raw)
	}

	u.User = nil

	return nameSafe.Replace(u.Host + u.Path), nil
}
