package hebitmap

import "fmt"

// Version is the format version stored at the start of every bitmap and table
// record. Each version only appends header fields to the previous one.
type Version uint32

const (
	// Version1 is the original layout: fixed header followed by raw rows.
	Version1 Version = 1 + iota
	// Version2 adds a padding block that aligns the body to 32 bytes.
	Version2
	// Version3 adds the run-length compression flag.
	Version3
	// Version4 adds the total buffer length to compressed tables.
	Version4
)

// LatestVersion is the highest version this package reads and writes.
const LatestVersion = Version4

// fieldSet lists the optional header fields present for a version.
type fieldSet struct {
	compressed   bool
	padding      bool
	bufferLength bool
}

var versionThresholds = []struct {
	since Version
	apply func(*fieldSet)
}{
	{Version2, func(f *fieldSet) { f.padding = true }},
	{Version3, func(f *fieldSet) { f.compressed = true }},
	{Version4, func(f *fieldSet) { f.bufferLength = true }},
}

func (v Version) fields() fieldSet {
	var f fieldSet
	for _, threshold := range versionThresholds {
		if v >= threshold.since {
			threshold.apply(&f)
		}
	}
	return f
}

// Validate returns [ErrUnsupportedVersion] if v is outside [Version1, LatestVersion].
func (v Version) Validate() error {
	if v < Version1 || v > LatestVersion {
		return ErrUnsupportedVersion.WithMessage(
			fmt.Sprintf("version %d not in range [%d, %d]", v, Version1, LatestVersion))
	}
	return nil
}

// SupportsCompression reports whether records of this version carry the
// compression flag.
func (v Version) SupportsCompression() bool {
	return v.fields().compressed
}

func (v Version) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// paddingLength gives the number of zero bytes to write after a padding length
// field starting at offset so that the data following it is 32-byte aligned.
func paddingLength(offset int) int {
	return (32 - (offset+4)%32) % 32
}
