// Package cypher turns short natural-language requests into read-only
// Cypher queries. The rule-based generator is the always-available
// fallback; Translator adds a model-based path that degrades to the rules
// on any failure.
package cypher

import (
	"fmt"
	"regexp"
	"strings"
)

// Ordered rule patterns, first match wins. Input is lowercased before
// matching.
var (
	reLabelScan = regexp.MustCompile(`(?:find|show|get|list)\s+(?:all\s+)?(?:nodes\s+)?(?:of\s+type\s+|label\s+)?([a-z0-9_]+)`)
	rePropEqual = regexp.MustCompile(`(?:find|show|get)\s+(?:nodes\s+)?(?:where\s+)?([a-z0-9_]+)\s*(?:=|is|:)\s*['"]?([^'"]+)['"]?`)
	reNeighbors = regexp.MustCompile(`(?:neighbors of|connected to|connections of|show related to)\s+(?:node\s+)?['"]?([^'"]+)['"]?`)
	rePathBetween = regexp.MustCompile(`(?:path|relationship)s?\s+between\s+['"]?([^'"]+?)['"]?\s+(?:and|&)\s+['"]?([^'"]+)['"]?`)
	reCountLabel  = regexp.MustCompile(`(?:count|how many)\s+(?:nodes\s+)?([a-z0-9_]+)`)
	reGenericProp = regexp.MustCompile(`([a-z0-9_]+)\s+(?:is|=|:)\s*([a-z0-9_'-]+)`)
)

// safeHint is returned when no rule matches. It is still a syntactically
// valid, bounded, read-only query.
const safeHint = "-- Couldn't map input automatically. Example queries:\n" +
	"-- 1) find nodes of type Device\n" +
	"-- 2) show neighbors of 'Pump-123'\n" +
	"-- 3) path between 'Alice' and 'Bob'\n" +
	"MATCH (n) RETURN n LIMIT 50"

// Generate translates free text into a single read-only Cypher query using
// an ordered list of conservative pattern rules. It never fails: inputs
// that match no rule produce a bounded default query with usage hints, so
// the result is always non-empty and never contains a mutating clause.
func Generate(text string) string {
	if strings.TrimSpace(text) == "" {
		return "-- empty input: no cypher generated"
	}
	lowered := strings.ToLower(strings.TrimSpace(text))

	if m := reLabelScan.FindStringSubmatch(lowered); m != nil {
		return fmt.Sprintf("MATCH (n:`%s`) RETURN n LIMIT 200", m[1])
	}

	if m := rePropEqual.FindStringSubmatch(lowered); m != nil {
		prop, val := m[1], escapeString(strings.TrimSpace(m[2]))
		if isDigits(val) {
			return fmt.Sprintf("MATCH (n) WHERE coalesce(n.%s, '') = %s OR toString(n.%s) = '%s' RETURN n LIMIT 200", prop, val, prop, val)
		}
		return fmt.Sprintf("MATCH (n) WHERE toLower(coalesce(n.%s, '')) = '%s' RETURN n LIMIT 200", prop, val)
	}

	if m := reNeighbors.FindStringSubmatch(lowered); m != nil {
		name := escapeString(strings.TrimSpace(m[1]))
		return fmt.Sprintf(
			"MATCH (n) WHERE toLower(coalesce(n.name,'')) = '%s' OR toLower(coalesce(n.id,'')) = '%s' MATCH (n)-[r]-(m) RETURN n, r, m LIMIT 300",
			name, name,
		)
	}

	if m := rePathBetween.FindStringSubmatch(lowered); m != nil {
		a, b := escapeString(strings.TrimSpace(m[1])), escapeString(strings.TrimSpace(m[2]))
		return fmt.Sprintf(
			"MATCH (a), (b) WHERE (toLower(coalesce(a.name,'')) = '%s' OR toLower(coalesce(a.id,'')) = '%s') "+
				"AND (toLower(coalesce(b.name,'')) = '%s' OR toLower(coalesce(b.id,'')) = '%s') "+
				"MATCH p = shortestPath((a)-[*..6]-(b)) RETURN p LIMIT 1",
			a, a, b, b,
		)
	}

	if m := reCountLabel.FindStringSubmatch(lowered); m != nil {
		return fmt.Sprintf("MATCH (n:`%s`) RETURN count(n) as count", m[1])
	}

	if m := reGenericProp.FindStringSubmatch(lowered); m != nil {
		prop, val := m[1], escapeString(m[2])
		if isDigits(val) {
			return fmt.Sprintf("MATCH (n) WHERE n.%s = %s RETURN n LIMIT 200", prop, val)
		}
		return fmt.Sprintf("MATCH (n) WHERE toLower(coalesce(n.%s, '')) = '%s' RETURN n LIMIT 200", prop, val)
	}

	return safeHint
}

// escapeString escapes single quotes so extracted literals cannot break
// the surrounding query syntax. This is not a full injection guard; the
// generated queries are read-only by construction.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
