package flatfile

import (
	"fmt"
	"strings"

	"github.com/cognicore/kegglink/pkg/kegglink/internalerr"
)

// Section identifies a list-valued section of a Record that can be projected.
type Section string

// Projectable sections.
const (
	SectionPathway Section = "PATHWAY"
	SectionDBLinks Section = "DBLINKS"
)

// maxValueLen guards against values wider than the storage columns they end
// up in; longer values are dropped, not truncated.
const maxValueLen = 255

// Project filters a record's list section against an allow-list of keys and
// renames each kept key K to lower(K)+"_id", the storage column convention.
//
// Requesting a section the record never contained returns
// internalerr.ErrMissingSection: that is a caller mistake (wrong section for
// this entity type), not bad input data. When the input carries duplicate
// keys the last occurrence wins; this is deliberate and relied upon by
// callers that re-project merged records.
func Project(rec Record, section Section, allowed []string) (map[string]string, error) {
	pairs, err := sectionPairs(rec, section)
	if err != nil {
		return nil, err
	}

	allow := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		allow[key] = struct{}{}
	}

	out := make(map[string]string)
	for _, pair := range pairs {
		if _, ok := allow[pair[0]]; !ok {
			continue
		}
		if len(pair[1]) >= maxValueLen {
			continue
		}
		out[strings.ToLower(pair[0])+"_id"] = pair[1]
	}
	return out, nil
}

// sectionPairs flattens a list section into ordered (key, value) pairs.
func sectionPairs(rec Record, section Section) ([][2]string, error) {
	var pairs [][2]string
	switch section {
	case SectionPathway:
		for _, ref := range rec.Pathways {
			pairs = append(pairs, [2]string{ref.ID, ref.Name})
		}
	case SectionDBLinks:
		for _, link := range rec.DBLinks {
			pairs = append(pairs, [2]string{link.Database, link.ID})
		}
	default:
		return nil, fmt.Errorf("project section %q: %w", section, internalerr.ErrMissingSection)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("project section %q: %w", section, internalerr.ErrMissingSection)
	}
	return pairs, nil
}
