package resolver

import (
	"path"
	"strings"

	"github.com/arthur-debert/mclaunch/pkg/errors"
)

// MavenPath converts group:artifact:version[:classifier][@ext] to its
// repository-relative path, using forward slashes.
func MavenPath(coordinate string) (string, error) {
	ext := "jar"
	coord := coordinate
	if i := strings.LastIndex(coord, "@"); i >= 0 {
		ext = coord[i+1:]
		coord = coord[:i]
	}

	parts := strings.Split(coord, ":")
	if len(parts) < 3 || len(parts) > 4 || ext == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid maven coordinate %q", coordinate)
	}
	for _, p := range parts {
		if p == "" {
			return "", errors.Newf(errors.ErrInvalidInput, "invalid maven coordinate %q", coordinate)
		}
	}

	group, artifact, version := parts[0], parts[1], parts[2]
	file := artifact + "-" + version
	if len(parts) == 4 {
		file += "-" + parts[3]
	}
	file += "." + ext

	return path.Join(strings.ReplaceAll(group, ".", "/"), artifact, version, file), nil
}
