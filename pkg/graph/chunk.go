package graph

// Chunk splits text into overlapping windows of at most size characters,
// where consecutive windows overlap by overlap characters. The windows
// cover the text end to end; only the last one may be shorter. Text no
// longer than size is returned as a single chunk.
//
// An overlap >= size is a configuration error and is clamped below size
// so the sequence always terminates.
func Chunk(text string, size, overlap int) []string {
	if size < 1 {
		size = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; ; start += step {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
