package cypher

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "label scan",
			input: "find devices",
			want:  "MATCH (n:`devices`) RETURN n LIMIT 200",
		},
		{
			name:  "label scan with filler words",
			input: "show all nodes of type Material",
			want:  "MATCH (n:`material`) RETURN n LIMIT 200",
		},
		{
			name:  "count by label",
			input: "count materials",
			want:  "MATCH (n:`materials`) RETURN count(n) as count",
		},
		{
			name:  "how many",
			input: "how many wafers",
			want:  "MATCH (n:`wafers`) RETURN count(n) as count",
		},
		{
			name:  "neighbors",
			input: "neighbors of 'Pump-123'",
			want:  "MATCH (n) WHERE toLower(coalesce(n.name,'')) = 'pump-123' OR toLower(coalesce(n.id,'')) = 'pump-123' MATCH (n)-[r]-(m) RETURN n, r, m LIMIT 300",
		},
		{
			name:  "path between",
			input: "path between 'HF' and 'Yield Loss'",
			want: "MATCH (a), (b) WHERE (toLower(coalesce(a.name,'')) = 'hf' OR toLower(coalesce(a.id,'')) = 'hf') " +
				"AND (toLower(coalesce(b.name,'')) = 'yield loss' OR toLower(coalesce(b.id,'')) = 'yield loss') " +
				"MATCH p = shortestPath((a)-[*..6]-(b)) RETURN p LIMIT 1",
		},
		{
			name:  "generic property pair",
			input: "status is active",
			want:  "MATCH (n) WHERE toLower(coalesce(n.status, '')) = 'active' RETURN n LIMIT 200",
		},
		{
			name:  "generic numeric property",
			input: "version = 42",
			want:  "MATCH (n) WHERE n.version = 42 RETURN n LIMIT 200",
		},
		{
			name:  "empty input",
			input: "   ",
			want:  "-- empty input: no cypher generated",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) =\n%q\nwant\n%q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateSafeHint(t *testing.T) {
	got := Generate("?!?!")
	if got == "" {
		t.Fatal("fallback must not be empty")
	}
	if !strings.Contains(got, "MATCH (n) RETURN n LIMIT 50") {
		t.Errorf("fallback should end in a bounded query, got %q", got)
	}
}

func TestGenerateEscapesQuotes(t *testing.T) {
	got := Generate("neighbors of 'O'Brien Chamber'")
	if strings.Contains(strings.ReplaceAll(got, `\'`, ""), "o'brien") {
		t.Errorf("unescaped single quote in %q", got)
	}
}

func TestGenerateNeverMutates(t *testing.T) {
	inputs := []string{
		"find devices", "count materials", "delete everything",
		"drop database", "neighbors of 'x'", "", "create a node",
	}
	for _, input := range inputs {
		got := Generate(input)
		upper := strings.ToUpper(got)
		for _, verb := range []string{"CREATE ", "DELETE ", "MERGE ", "REMOVE ", "DROP ", "SET "} {
			if strings.Contains(upper, verb) {
				t.Errorf("Generate(%q) contains mutating verb %q: %q", input, verb, got)
			}
		}
	}
}
