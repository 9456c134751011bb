package scanner

import "os"

// ReadText reads a file and reports whether it looks like text. Binary files
// (a null byte within the first 512 bytes, the same heuristic 'file' uses)
// return text=false and must be skipped without error.
func ReadText(path string) (content string, text bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}

	limit := len(data)
	if limit > 512 {
		limit = 512
	}
	for i := 0; i < limit; i++ {
		if data[i] == 0 {
			return "", false, nil
		}
	}

	return string(data), true, nil
}
