package edux

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultCookieFile is where the cookie is looked up when nothing else is configured.
const DefaultCookieFile = "~/.edux.cookie"

// Session is the cookie set exchanged with Edux. The server may rotate
// cookies on any response, so the client updates it after every request.
type Session struct {
	cookies map[string]string
}

// NewSession creates a session holding a copy of the given cookies.
func NewSession(cookies map[string]string) *Session {
	s := &Session{cookies: make(map[string]string, len(cookies))}
	for name, value := range cookies {
		s.cookies[name] = value
	}
	return s
}

// Set stores a single cookie.
func (s *Session) Set(name, value string) {
	s.cookies[name] = value
}

// Get returns the value of a cookie.
func (s *Session) Get(name string) (string, bool) {
	v, ok := s.cookies[name]
	return v, ok
}

// Len reports how many cookies the session holds.
func (s *Session) Len() int {
	return len(s.cookies)
}

// Names returns the cookie names in sorted order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.cookies))
	for name := range s.cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cookies returns a copy of the cookie set.
func (s *Session) Cookies() map[string]string {
	out := make(map[string]string, len(s.cookies))
	for name, value := range s.cookies {
		out[name] = value
	}
	return out
}

// httpCookies converts the set into request cookies.
func (s *Session) httpCookies() []*http.Cookie {
	var out []*http.Cookie
	for _, name := range s.Names() {
		out = append(out, &http.Cookie{Name: name, Value: s.cookies[name]})
	}
	return out
}

// Update applies the Set-Cookie headers of a response. Deleted or expired
// cookies are dropped; it returns true when anything changed.
func (s *Session) Update(received []*http.Cookie) bool {
	changed := false
	now := time.Now()
	for _, c := range received {
		expired := c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now))
		old, had := s.cookies[c.Name]
		if expired {
			if had {
				delete(s.cookies, c.Name)
				changed = true
			}
			continue
		}
		if !had || old != c.Value {
			s.cookies[c.Name] = c.Value
			changed = true
		}
	}
	return changed
}

// ExpandHome resolves a leading "~" to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// LoadCookieFile reads a cookie file with one name=value pair per line.
// Only the first pair is honored.
func LoadCookieFile(path string) (map[string]string, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCookieConfig, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			break
		}
		return map[string]string{name: strings.TrimRightFunc(value, isSpace)}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCookieConfig, err)
	}

	return nil, fmt.Errorf("%w: file %s probably does not contain a cookie in name=value syntax", ErrBadCookieConfig, path)
}

// SaveCookieFile writes the cookies to disk, one name=value pair per line.
func SaveCookieFile(path string, cookies map[string]string) error {
	expanded, err := ExpandHome(path)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, name := range NewSession(cookies).Names() {
		fmt.Fprintf(&b, "%s=%s\n", name, cookies[name])
	}

	if err := os.WriteFile(expanded, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
