package pager

// SplitIntoChunks splits text into chunks of at most maxSize runes. Within
// each window the chunk is cut at the last newline (the newline itself is
// dropped); a window without a newline is cut at maxSize. Empty text yields a
// single empty chunk.
func SplitIntoChunks(text string, maxSize int) []string {
	if maxSize < 1 {
		maxSize = 1
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}

	var chunks []string
	for cur := 0; cur < len(runes); {
		next := min(cur+maxSize, len(runes))
		window := runes[cur:next]
		if nl := lastNewline(window); nl >= 0 {
			window = window[:nl]
			next = cur + nl + 1
		}
		chunks = append(chunks, string(window))
		cur = next
	}
	return chunks
}

func lastNewline(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == '\n' {
			return i
		}
	}
	return -1
}

// PageGetter returns the chunk for a page index, wrapping out-of-range
// indexes modulo the chunk count.
func PageGetter(chunks []string) func(page int) string {
	if len(chunks) == 0 {
		chunks = []string{""}
	}
	return func(page int) string {
		page %= len(chunks)
		if page < 0 {
			page += len(chunks)
		}
		return chunks[page]
	}
}
