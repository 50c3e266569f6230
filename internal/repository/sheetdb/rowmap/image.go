package rowmap

import "regexp"

// Drive link probes, tried strictly in order. A later pattern is reached only
// when every earlier one fails to match.
var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`open\?id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`([a-zA-Z0-9_-]{25,})`),
}

// DisplayImageURL rewrites a Drive sharing link to a direct-content URL that
// renders without redirects or cookie checks. Links with no recognizable file
// identifier are returned unchanged; empty input yields "".
func DisplayImageURL(raw string) string {
	if raw == "" {
		return ""
	}

	for _, pattern := range driveIDPatterns {
		if match := pattern.FindStringSubmatch(raw); len(match) > 1 && match[1] != "" {
			return "https://lh3.googleusercontent.com/d/" + match[1] + "=w400"
		}
	}

	return raw
}
