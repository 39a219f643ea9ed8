package edux

import (
	"context"
	"io"
	"regexp"
	"sort"
	"strings"
)

// coursePlaceholder is the example course code shown in the landing page help text.
const coursePlaceholder = "KOD-PREDMETU"

var courseRegex = regexp.MustCompile(`courses/([^<>"'/?#\s]+)`)

// ParseCourses extracts the distinct course codes linked from the landing page
func ParseCourses(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var courses []string
	for _, m := range courseRegex.FindAllStringSubmatch(string(data), -1) {
		code := m[1]
		if strings.HasSuffix(code, coursePlaceholder) || seen[code] {
			continue
		}
		seen[code] = true
		courses = append(courses, code)
	}
	sort.Strings(courses)

	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	return courses, nil
}

// FetchCourses retrieves all available courses from the Edux landing page.
// The page is public, so no cookies are sent.
func (c *Client) FetchCourses(ctx context.Context) ([]string, error) {
	if !c.refresh {
		if courses, ok := readCache(c.cacheDir, c.baseURL); ok {
			c.log.Debug("using cached course list", "count", len(courses))
			return courses, nil
		}
	}

	body, err := c.getPublic(ctx, "")
	if err != nil {
		return nil, err
	}

	courses, err := ParseCourses(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	writeCache(c.cacheDir, c.baseURL, courses)
	return courses, nil
}
