package version

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ArtekArtek/fiddle/internal/model"
)

// Tag prefix stripped during normalization
const (
	TagPrefix = "v"
)

// Normalize returns the canonical form of a version tag: surrounding
// whitespace removed and the leading "v" stripped. Registry keys and
// every version passed between components use this form.
func Normalize(input string) string {
	return strings.TrimPrefix(strings.TrimSpace(input), TagPrefix)
}

// IsValid reports whether input parses as a semantic version after
// normalization
func IsValid(input string) bool {
	return semver.IsValid(TagPrefix + Normalize(input))
}

// Compare orders two versions: -1 if a is older than b, 0 if equal, +1 if
// newer. Prereleases sort before the release they precede. Inputs may be
// normalized or tagged.
func Compare(a, b string) int {
	return semver.Compare(TagPrefix+Normalize(a), TagPrefix+Normalize(b))
}

// SortDescending orders tags newest first, in place
func SortDescending(tags []string) {
	sort.Slice(tags, func(i, j int) bool {
		return Compare(tags[i], tags[j]) > 0
	})
}

// ToRecord converts a list of versions into a registry map keyed by the
// normalized tag name. Duplicate keys resolve to the last entry.
func ToRecord(versions []model.Version) map[string]model.Version {
	record := make(map[string]model.Version, len(versions))
	for _, v := range versions {
		key := Normalize(v.TagName)
		v.TagName = key
		record[key] = v
	}
	return record
}
