// Package pathenc transcodes between real project paths and the lossy
// directory names used under the session cache root.
//
// The encoding is deterministic but not reversible: separators and literal
// dots collapse into the same filler character, so Decode is a best-effort
// guess. Callers that know the real path from session-log content must
// prefer it over Decode output.
package pathenc

import "strings"

// Filler replaces path separators and dots in encoded directory names.
const Filler = '-'

// Encode converts a drive-letter-rooted path ("D:\Proj\A" or "D:/Proj/A")
// into its cache directory name ("D--Proj-A"). Every separator and literal
// dot in the remainder becomes the filler character, so distinct paths can
// encode to the same name.
//
// Paths not rooted at a drive letter pass through unchanged.
func Encode(realPath string) string {
	letter, rest, ok := splitDrive(realPath)
	if !ok {
		return realPath
	}

	var b strings.Builder
	b.Grow(len(realPath) + 1)
	b.WriteByte(letter)
	b.WriteString("--")
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '\\', '/', '.':
			b.WriteByte(Filler)
		default:
			b.WriteByte(rest[i])
		}
	}
	return b.String()
}

// Decode converts a cache directory name back into a path guess:
// "D--Proj-A" becomes "D:\Proj\A". Every filler character is assumed to
// have been a separator, which is wrong whenever the original path
// contained a dot or a literal filler. The result is a fallback only;
// use the session-log cwd when one exists.
//
// Names without the "<letter>--" prefix pass through unchanged, mirroring
// Encode's pass-through for non-drive paths.
func Decode(dirName string) string {
	if !HasDrivePrefix(dirName) {
		return dirName
	}

	rest := strings.ReplaceAll(dirName[3:], string(Filler), `\`)
	return string(dirName[0]) + `:\` + rest
}

// HasDrivePrefix reports whether dirName starts with the "<letter>--"
// marker produced by Encode for drive-rooted paths.
func HasDrivePrefix(dirName string) bool {
	return len(dirName) >= 3 && isDriveLetter(dirName[0]) && dirName[1] == '-' && dirName[2] == '-'
}

// splitDrive splits "D:\Proj\A" into letter 'D' and remainder "Proj\A".
// A bare drive root ("D:\") yields an empty remainder. Returns ok=false
// for anything that is not <letter>: followed by a separator or end.
func splitDrive(p string) (letter byte, rest string, ok bool) {
	if len(p) < 2 || !isDriveLetter(p[0]) || p[1] != ':' {
		return 0, "", false
	}
	if len(p) == 2 {
		return p[0], "", true
	}
	if p[2] != '\\' && p[2] != '/' {
		return 0, "", false
	}
	return p[0], p[3:], true
}

func isDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
