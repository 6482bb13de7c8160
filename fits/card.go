package fits

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

const (
	cardSize   = 80
	blockSize  = 2880
	valueWidth = cardSize - 10 // columns 11-80
)

// fitValue prepares a string header value: characters a header cannot hold
// are replaced and values that do not fit into one card are truncated.
func fitValue(logger *slog.Logger, key, v string) string {
	v = sanitize(v)
	if len(quote(v)) <= valueWidth {
		return v
	}
	logger.Warn("truncating header value", "keyword", key, "length", len(v))
	for len(quote(v)) > valueWidth {
		v = v[:len(v)-1]
	}
	return v
}

// splitComment splits text over as many COMMENT cards as needed.
func splitComment(text string) []string {
	const width = cardSize - 8
	text = sanitize(text)
	var parts []string
	for {
		n := min(len(text), width)
		parts = append(parts, text[:n])
		text = text[n:]
		if text == "" {
			return parts
		}
	}
}

// quote encloses s in single quotes, doubling embedded quotes and padding
// the content to the minimum of 8 characters.
func quote(s string) string {
	return fmt.Sprintf("'%-8s'", strings.ReplaceAll(s, "'", "''"))
}

// sanitize replaces characters outside printable ASCII, which FITS headers
// cannot hold.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, s)
}

// Card is one keyword record of a header.
type Card struct {
	Key     string
	Value   string // strings are unquoted with trailing blanks removed
	Comment string
	Quoted  bool
}

func parseCard(raw string) Card {
	key := strings.TrimSpace(raw[:8])
	if raw[8:10] != "= " {
		return Card{Key: key, Comment: strings.TrimRight(raw[8:], " ")}
	}

	rest := strings.TrimLeft(raw[10:], " ")
	if !strings.HasPrefix(rest, "'") {
		value, comment, _ := strings.Cut(rest, "/")
		return Card{Key: key, Value: strings.TrimSpace(value), Comment: strings.TrimSpace(comment)}
	}

	var b strings.Builder
	i := 1
	for i < len(rest) {
		if rest[i] == '\'' {
			if i+1 < len(rest) && rest[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			i++
			break
		}
		b.WriteByte(rest[i])
		i++
	}
	_, comment, _ := strings.Cut(rest[i:], "/")
	return Card{
		Key:     key,
		Value:   strings.TrimRight(b.String(), " "),
		Comment: strings.TrimSpace(comment),
		Quoted:  true,
	}
}

// Header is the ordered list of cards of an HDU, without END.
type Header []Card

// Get returns the first card with the given keyword.
func (h Header) Get(key string) (Card, bool) {
	for _, c := range h {
		if c.Key == key {
			return c, true
		}
	}
	return Card{}, false
}

// String returns the value of a string keyword.
func (h Header) String(key string) (string, bool) {
	c, ok := h.Get(key)
	if !ok || !c.Quoted {
		return "", false
	}
	return c.Value, true
}

// Int returns the value of an integer keyword.
func (h Header) Int(key string) (int64, bool) {
	c, ok := h.Get(key)
	if !ok || c.Quoted {
		return 0, false
	}
	v, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Bool returns the value of a logical keyword.
func (h Header) Bool(key string) (bool, bool) {
	c, ok := h.Get(key)
	if !ok || c.Quoted {
		return false, false
	}
	switch c.Value {
	case "T":
		return true, true
	case "F":
		return false, true
	}
	return false, false
}

// Comments returns the text of all COMMENT cards without surrounding blanks.
func (h Header) Comments() []string {
	var out []string
	for _, c := range h {
		if c.Key == "COMMENT" {
			out = append(out, strings.TrimSpace(c.Comment))
		}
	}
	return out
}
