package datafile

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Resolve joins root, groupKey, and name into one normalized absolute path,
// then splits off the final segment. parentPath identifies the group chain
// to materialize and leafName the entry to create beneath it.
//
// Examples:
//   - ("/", "exp1/run2", "trace") -> ("/exp1/run2", "trace")
//   - ("/lab", "", "readme")      -> ("/lab", "readme")
func Resolve(root, groupKey, name string) (parentPath, leafName string, err error) {
	full, err := AbsPath(root, groupKey, name)
	if err != nil {
		return "", "", err
	}
	if full == "/" {
		return "", "", errors.Wrap(ErrInvalidPath, "empty name")
	}
	return CleanPath(path.Dir(full)), path.Base(full), nil
}

// AbsPath joins parts under "/" and normalizes the result, validating every
// segment. Empty parts are skipped, so a caller can pass an empty group key.
func AbsPath(parts ...string) (string, error) {
	joined := CleanPath(path.Join(append([]string{"/"}, parts...)...))
	for _, seg := range SplitPath(joined) {
		if err := checkSegment(seg); err != nil {
			return "", err
		}
	}
	return joined, nil
}

// SplitPath splits a path into its components. Leading and trailing slashes
// are handled, empty components are removed.
//
// Examples:
//   - "/" -> []string{}
//   - "/foo/bar" -> []string{"foo", "bar"}
func SplitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return []string{}
	}
	return strings.Split(p, "/")
}

// CleanPath normalizes a path, ensuring it starts with "/" and has no
// trailing slash.
func CleanPath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(path.Clean(p), "/")
}

// checkSegment rejects names path.Clean cannot fix: traversal segments,
// control characters, and the leading dot reserved for container metadata.
func checkSegment(seg string) error {
	if seg == "." || seg == ".." || strings.HasPrefix(seg, ".") {
		return errors.Wrapf(ErrInvalidPath, "reserved segment %q", seg)
	}
	for _, r := range seg {
		if r < 0x20 || r == 0x7f {
			return errors.Wrapf(ErrInvalidPath, "control character in segment %q", seg)
		}
	}
	return nil
}
