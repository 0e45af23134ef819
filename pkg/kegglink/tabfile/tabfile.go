// Package tabfile loads the tab-separated tables published alongside the
// entity description files: the pathway list, the protein-pathway membership
// list, the organism table, and generic two-column lookup tables.
package tabfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// PathwayRow is one row of the pathway list table.
type PathwayRow struct {
	ID   string
	Name string
}

// MembershipRow associates one protein identifier with one pathway identifier.
type MembershipRow struct {
	ProteinID string
	PathwayID string
}

// Organism is one row of the organism table. CommonName is extracted from the
// parenthesized suffix of the scientific name when present.
type Organism struct {
	KeggID     string
	Code       string
	Name       string
	CommonName string
}

// ParsePathways reads a two-column id<TAB>name table.
func ParsePathways(r io.Reader) ([]PathwayRow, error) {
	var rows []PathwayRow
	err := eachRow(r, 2, func(cols []string) {
		rows = append(rows, PathwayRow{ID: cols[0], Name: cols[1]})
	})
	return rows, err
}

// ParseMemberships reads a two-column protein<TAB>pathway table.
func ParseMemberships(r io.Reader) ([]MembershipRow, error) {
	var rows []MembershipRow
	err := eachRow(r, 2, func(cols []string) {
		rows = append(rows, MembershipRow{ProteinID: cols[0], PathwayID: cols[1]})
	})
	return rows, err
}

// ParseLookup reads a two-column key<TAB>value table into a map. Later rows
// overwrite earlier ones.
func ParseLookup(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	err := eachRow(r, 2, func(cols []string) {
		out[cols[0]] = cols[1]
	})
	return out, err
}

// ParseOrganisms reads the four-column organism table; the fourth column (the
// taxonomy hierarchy) is ignored. A name like "Homo sapiens (human)" splits
// into Name "Homo sapiens" and CommonName "Human".
func ParseOrganisms(r io.Reader) ([]Organism, error) {
	var rows []Organism
	err := eachRow(r, 3, func(cols []string) {
		name, common := splitOrganismName(cols[2])
		rows = append(rows, Organism{
			KeggID:     cols[0],
			Code:       cols[1],
			Name:       name,
			CommonName: common,
		})
	})
	return rows, err
}

// eachRow scans a table line by line, skipping blanks, and hands at least
// minCols columns to fn. A row with fewer columns is a hard error naming the
// line: the tables are machine-generated, so a short row means the caller fed
// the wrong file.
func eachRow(r io.Reader, minCols int, fn func(cols []string)) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < minCols {
			return fmt.Errorf("line %d: want %d tab-separated columns, got %d", lineNo, minCols, len(cols))
		}
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		fn(cols)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan table: %w", err)
	}
	return nil
}

func splitOrganismName(raw string) (name, common string) {
	raw = strings.ReplaceAll(raw, ")", "")
	name, common, found := strings.Cut(raw, " (")
	name = capitalize(strings.TrimSpace(name))
	if !found {
		return name, ""
	}
	return name, capitalize(strings.TrimSpace(common))
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
