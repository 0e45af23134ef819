// Package flatfile parses KEGG entity description blocks: line-oriented,
// keyword-prefixed text where indented lines continue the section opened by
// the last non-indented line.
//
// Only the sections meaningful to downstream consumers are retained (ENTRY,
// NAME, PATHWAY, DBLINKS); everything else is skipped. Parsing holds no state
// between blocks, so independent blocks can be parsed concurrently.
package flatfile

import (
	"fmt"
	"regexp"
	"strings"
)

// Section keywords recognized in a description block.
const (
	kwEntry   = "ENTRY"
	kwName    = "NAME"
	kwPathway = "PATHWAY"
	kwDBLinks = "DBLINKS"
)

// columnGap separates columns inside a PATHWAY row (two or more spaces).
var columnGap = regexp.MustCompile(`\s{2,}`)

// PathwayRef is one PATHWAY row: a pathway identifier and its display name.
type PathwayRef struct {
	ID   string
	Name string
}

// DBLink is one DBLINKS row: an external database and the linked identifier.
type DBLink struct {
	Database string
	ID       string
}

// Record holds the parsed sections of a single entity description block.
// Scalar sections (ENTRY, NAME) and list sections (PATHWAY, DBLINKS) are
// distinct fields so a consumer cannot treat one shape as the other. A nil
// list means the section never appeared in the block.
type Record struct {
	Entry     []string
	EntryName string
	Pathways  []PathwayRef
	DBLinks   []DBLink
}

// ParseError reports a line that cannot be tokenized into its expected shape.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse line %q: %s", e.Line, e.Reason)
}

// Parse assembles a Record from the lines of exactly one entity block.
// Callers feeding a multi-entity stream must split it into single-entity
// blocks first (KEGG terminates blocks with "///").
//
// A DBLINKS row without a colon separator is a hard error for the whole
// record; other malformed rows degrade to shorter tuples without failing.
func Parse(lines []string) (Record, error) {
	var rec Record
	keyword := ""
	for _, line := range lines {
		opener := opensSection(line)
		var rest string
		keyword, rest = Classify(line, keyword)

		switch keyword {
		case kwEntry:
			if opener {
				rec.Entry = strings.Fields(rest)
			}
		case kwName:
			// Only the first name on the opening line is retained;
			// alternate names are discarded, matching the source data
			// convention of listing synonyms after the primary name.
			if opener {
				if fields := strings.Fields(rest); len(fields) > 0 {
					rec.EntryName = strings.TrimSuffix(fields[0], ";")
				}
			}
		case kwPathway:
			rec.Pathways = append(rec.Pathways, parsePathwayRow(rest))
		case kwDBLinks:
			link, err := parseLinkRow(rest)
			if err != nil {
				return Record{}, err
			}
			rec.DBLinks = append(rec.DBLinks, link)
		}
	}
	return rec, nil
}

// parsePathwayRow splits a PATHWAY payload on runs of two or more spaces.
// Rows lacking a name column yield a ref with an empty Name.
func parsePathwayRow(rest string) PathwayRef {
	cols := columnGap.Split(rest, 2)
	ref := PathwayRef{ID: strings.TrimSpace(cols[0])}
	if len(cols) > 1 {
		ref.Name = strings.TrimSpace(cols[1])
	}
	return ref
}

// parseLinkRow splits a DBLINKS payload on its first colon.
func parseLinkRow(rest string) (DBLink, error) {
	database, id, ok := strings.Cut(rest, ":")
	if !ok {
		return DBLink{}, &ParseError{Line: rest, Reason: "DBLINKS row has no colon separator"}
	}
	return DBLink{
		Database: strings.TrimSpace(database),
		ID:       strings.TrimSpace(id),
	}, nil
}
