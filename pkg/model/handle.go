package model

import "strings"

// DisplayHandle derives the handle shown for a profile URL: the final
// "/"-separated segment. When that segment is empty (trailing slash, or an
// empty value) the full input is returned unchanged.
//
//	DisplayHandle("https://github.com/alice")  == "alice"
//	DisplayHandle("https://github.com/alice/") == "https://github.com/alice/"
func DisplayHandle(raw string) string {
	idx := strings.LastIndex(raw, "/")
	if idx < 0 {
		return raw
	}
	segment := raw[idx+1:]
	if segment == "" {
		return raw
	}
	return segment
}
