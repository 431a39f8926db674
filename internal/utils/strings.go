// Package utils holds small shared helpers with no dependencies.
package utils

// remoteKeywords are matched as substrings against job location and title.
// This is a deliberately approximate heuristic.
var remoteKeywords = []string{"remote", "anywhere", "work from home", "wfh", "home office"}

// RemoteKeywords returns a copy of the keyword set used for remote
// detection. Callers build SQL LIKE filters from it.
func RemoteKeywords() []string {
	out := make([]string, len(remoteKeywords))
	copy(out, remoteKeywords)
	return out
}
