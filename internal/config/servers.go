package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadServerList loads endpoint addresses from a line-oriented text file.
//
// One endpoint per line; blank lines and lines starting with '#' are
// skipped, and surrounding whitespace is trimmed. File order is preserved.
// An empty file yields an empty slice, not an error.
func ReadServerList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read server list: %w", err)
	}
	defer func() { _ = f.Close() }()

	var servers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		servers = append(servers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read server list: %w", err)
	}

	return servers, nil
}
