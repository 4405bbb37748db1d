// Package treepath converts between "/"-delimited item paths and label
// segments.
//
// A path such as "Fruit/Apple" addresses the item labelled "Apple" below
// the item labelled "Fruit". Labels that contain a slash or a backslash
// are escaped with a backslash, so the label "B/C" is written "B\/C".
package treepath

import "strings"

// Separator delimits segments in a path.
const Separator = '/'

const escape = '\\'

// Parse splits a path into its unescaped label segments.
//
// Empty segments are skipped, which includes any leading or repeated
// slashes. A backslash makes the following character literal; a trailing
// lone backslash is dropped.
func Parse(path string) []string {
	var (
		segs []string
		sb   strings.Builder
	)
	runes := []rune(path)
	flush := func() {
		if sb.Len() > 0 {
			segs = append(segs, sb.String())
			sb.Reset()
		}
	}
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case Separator:
			flush()
		case escape:
			if i+1 < len(runes) {
				i++
				sb.WriteRune(runes[i])
			}
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return segs
}

// Escape returns label with every slash and backslash escaped so that it
// parses back as a single segment.
func Escape(label string) string {
	if !strings.ContainsAny(label, `/\`) {
		return label
	}
	var sb strings.Builder
	sb.Grow(len(label) + 4)
	for _, r := range label {
		if r == Separator || r == escape {
			sb.WriteRune(escape)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Unescape reverses Escape for a single segment.
func Unescape(seg string) string {
	if !strings.ContainsRune(seg, escape) {
		return seg
	}
	var sb strings.Builder
	runes := []rune(seg)
	for i := 0; i < len(runes); i++ {
		if runes[i] == escape {
			if i+1 < len(runes) {
				i++
				sb.WriteRune(runes[i])
			}
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// Join escapes each label and joins them with the separator.
func Join(labels []string) string {
	var sb strings.Builder
	for i, l := range labels {
		if i > 0 {
			sb.WriteRune(Separator)
		}
		sb.WriteString(Escape(l))
	}
	return sb.String()
}

// EscapedLen reports the length in bytes of Escape(label) without
// building it.
func EscapedLen(label string) int {
	return len(label) + strings.Count(label, "/") + strings.Count(label, `\`)
}
