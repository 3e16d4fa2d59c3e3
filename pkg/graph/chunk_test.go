package graph

import (
	"strings"
	"testing"
)

func TestChunkShortText(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
	}{
		{name: "empty", text: "", size: 10},
		{name: "shorter than size", text: "hello", size: 10},
		{name: "exactly size", text: "0123456789", size: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.size, 3)
			if len(chunks) != 1 || chunks[0] != tt.text {
				t.Errorf("Chunk() = %q, want single chunk %q", chunks, tt.text)
			}
		})
	}
}

func TestChunkCoversText(t *testing.T) {
	text := strings.Repeat("abcdefghij", 25) // 250 chars
	size, overlap := 60, 15

	chunks := Chunk(text, size, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Dropping the overlapping prefix of every chunk after the first must
	// reconstruct the original text.
	rebuilt := chunks[0]
	for _, chunk := range chunks[1:] {
		if len(chunk) < overlap {
			t.Fatalf("chunk %q shorter than overlap %d", chunk, overlap)
		}
		rebuilt += chunk[overlap:]
	}
	if rebuilt != text {
		t.Errorf("reconstructed text differs from input")
	}

	for i, chunk := range chunks[:len(chunks)-1] {
		if len(chunk) != size {
			t.Errorf("chunk %d has length %d, want %d", i, len(chunk), size)
		}
	}
}

func TestChunkCount(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		size    int
		overlap int
		want    int
	}{
		{name: "no remainder", length: 100, size: 40, overlap: 10, want: 3},
		{name: "with remainder", length: 250, size: 60, overlap: 15, want: 6},
		{name: "one over", length: 61, size: 60, overlap: 15, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("x", tt.length)
			got := len(Chunk(text, tt.size, tt.overlap))
			// ceil((length - overlap) / (size - overlap))
			step := tt.size - tt.overlap
			want := (tt.length - tt.overlap + step - 1) / step
			if want != tt.want {
				t.Fatalf("test case is wrong: formula gives %d, case says %d", want, tt.want)
			}
			if got != want {
				t.Errorf("Chunk() produced %d chunks, want %d", got, want)
			}
		})
	}
}

func TestChunkClampsOverlap(t *testing.T) {
	// overlap >= size must not loop forever or produce empty windows
	chunks := Chunk(strings.Repeat("y", 30), 10, 10)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, chunk := range chunks {
		if chunk == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}
