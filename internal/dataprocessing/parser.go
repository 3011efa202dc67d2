package dataprocessing

import (
	"log/slog"
	"strings"
)

// DefaultDelimiter is the field separator used by portfolio exports.
const DefaultDelimiter = ','

// Parser splits raw delimited text into rows of trimmed string fields.
// It is a two-state scanner: outside quotes the delimiter closes a field
// and a line break closes a row; inside quotes both are literal content
// and a doubled quote decodes to a single quote character.
type Parser struct {
	logger    *slog.Logger
	delimiter rune
}

// NewParser creates a parser for comma-delimited portfolio exports.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger:    logger.With(slog.String("component", "parser")),
		delimiter: DefaultDelimiter,
	}
}

// Parse scans text into rows of fields. Each field is trimmed after it is
// closed, and lines that are blank after trimming are skipped entirely.
// Parse never fails: malformed quoting degrades to a best-effort literal
// interpretation instead of an error.
func (p *Parser) Parse(text string) [][]string {
	var (
		rows     [][]string
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		fields = append(fields, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		// A row with a single empty field came from a blank line.
		if len(fields) == 1 && fields[0] == "" {
			fields = nil
			return
		}
		rows = append(rows, fields)
		fields = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteRune(ch)
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case p.delimiter:
			endField()
		case '\n':
			endRow()
		case '\r':
			// The following '\n' closes the row; a lone CR is stripped
			// by the field trim anyway.
		default:
			field.WriteRune(ch)
		}
	}

	// Flush a trailing row without a final line break.
	if field.Len() > 0 || len(fields) > 0 {
		endRow()
	}

	p.logger.Debug("parsed delimited text",
		slog.Int("rows", len(rows)),
		slog.Int("bytes", len(text)))

	return rows
}

// SplitRows is the naive split-on-delimiter variant. It breaks fields that
// contain an embedded delimiter inside quotes and exists only for callers
// that depend on that historical behavior; Parse is the canonical scanner.
func SplitRows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, string(DefaultDelimiter))
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}
		rows = append(rows, parts)
	}
	return rows
}
