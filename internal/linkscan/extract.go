package linkscan

import "regexp"

// Matches bare http(s) links as well as the target of Markdown links.
// Closing parens, brackets and quotes terminate a URL so that
// "(https://example.com)" yields the URL without the wrapper.
var urlPattern = regexp.MustCompile(`https?://[^\s)\]"']+`)

// ExtractURLs returns the distinct http(s) URLs embedded in one document,
// in order of first appearance. Deduplication is per document: the same URL
// in two different documents is still probed once per document association.
func ExtractURLs(content string) []string {
	matches := urlPattern.FindAllString(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		urls = append(urls, m)
	}
	return urls
}
