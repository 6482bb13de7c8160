package ascii

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/celltable/table"
)

const declPrefix = "Column:"

// columnDecl is one "Column:" declaration of the comment header:
//
//	# Column: <name> [<type-keyword>] [(<unit>)] [-] [description]
type columnDecl struct {
	name        string
	kind        table.Kind
	unit        string
	description string
}

// header is what the leading comment block of a stream declares.
type header struct {
	decls     []columnDecl
	byName    map[string]columnDecl
	namesLine []string // tokens of the last comment line, unless it was a declaration
}

// stripComment removes everything from the first comment marker on and trims
// the remaining text.
func stripComment(line, marker string) string {
	if i := strings.Index(line, marker); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// countColumns returns the token count of the first data line. The stream
// position is left unchanged.
func countColumns(s *lineStream, marker string) (int, error) {
	defer s.mark()()
	for {
		line, ok, err := s.next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrNoDataLines
		}
		if data := stripComment(line, marker); data != "" {
			return len(strings.Fields(data)), nil
		}
	}
}

// scanHeader classifies the lines before the first data line. Blank lines
// are skipped, comment lines are either column declarations or candidate
// names lines, and the first line not starting with the marker ends the
// header. The stream position is left unchanged.
func scanHeader(s *lineStream, marker string) (*header, error) {
	defer s.mark()()

	h := &header{byName: make(map[string]columnDecl)}
	for {
		line, ok, err := s.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return h, nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, marker) {
			return h, nil
		}

		body := strings.TrimSpace(strings.ReplaceAll(line, marker, ""))
		if body == "" {
			continue
		}
		rest, isDecl := strings.CutPrefix(body, declPrefix)
		if !isDecl {
			h.namesLine = strings.Fields(body)
			continue
		}
		h.namesLine = nil

		decl, ok, err := parseColumnDecl(rest)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if _, dup := h.byName[decl.name]; dup {
			return nil, fmt.Errorf("%w: %w %q", ErrHeaderDetection, table.ErrDuplicateColumnName, decl.name)
		}
		h.byName[decl.name] = decl
		h.decls = append(h.decls, decl)
	}
}

// parseColumnDecl parses the text following "Column:". ok is false when the
// declaration has no name.
func parseColumnDecl(text string) (decl columnDecl, ok bool, err error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return columnDecl{}, false, nil
	}
	decl = columnDecl{name: tokens[0], kind: table.KindString}
	i := 1

	if i < len(tokens) && !strings.HasPrefix(tokens[i], "(") && tokens[i] != "-" {
		if decl.kind, err = KeywordToKind(tokens[i]); err != nil {
			return columnDecl{}, false, fmt.Errorf("column %q: %w", decl.name, err)
		}
		i++
	}

	if i < len(tokens) && strings.HasPrefix(tokens[i], "(") {
		j := i
		for j < len(tokens)-1 && !strings.HasSuffix(tokens[j], ")") {
			j++
		}
		if !strings.HasSuffix(tokens[j], ")") {
			j = i
		}
		unit := strings.Join(tokens[i:j+1], " ")
		decl.unit = strings.TrimSuffix(strings.TrimPrefix(unit, "("), ")")
		i = j + 1
	}

	if i < len(tokens) && tokens[i] == "-" {
		i++
	}
	decl.description = strings.Join(tokens[i:], " ")
	return decl, true, nil
}

// declaredNames returns the column names of a header without data lines:
// the names line if there are no declarations or it names as many columns,
// otherwise the declared names.
func (h *header) declaredNames() []string {
	if len(h.decls) == 0 || len(h.namesLine) == len(h.decls) {
		return slices.Clone(h.namesLine)
	}
	names := make([]string, len(h.decls))
	for i, d := range h.decls {
		names[i] = d.name
	}
	return names
}

// columnNames chooses the names of n columns: the names line if it has
// exactly n tokens, otherwise the declared names, padded with col<N>.
func (h *header) columnNames(n int, logger *slog.Logger) ([]string, error) {
	names := make([]string, 0, n)
	if len(h.namesLine) == n {
		names = append(names, h.namesLine...)
	} else {
		if len(h.decls) != 0 && len(h.decls) != n {
			logger.Warn("number of column descriptions does not match the number of columns",
				"descriptions", len(h.decls),
				"columns", n,
			)
		}
		for _, d := range h.decls[:min(n, len(h.decls))] {
			names = append(names, d.name)
		}
	}
	for i := len(names) + 1; i <= n; i++ {
		names = append(names, "col"+strconv.Itoa(i))
	}

	seen := make(map[string]struct{}, n)
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %w %q", ErrHeaderDetection, table.ErrDuplicateColumnName, name)
		}
		seen[name] = struct{}{}
	}
	return names, nil
}
