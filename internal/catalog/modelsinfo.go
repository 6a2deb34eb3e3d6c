package catalog

import (
	"bufio"
	"os"
	"strings"
)

// ParseModelsInfo reads the reference document mapping model ids to
// human-readable descriptions.
//
// The document lists one model per block: a bold "**name**" header, an
// optional "- Model ID: <id>" line naming the canonical id, and "- "
// bullet lines making up the description.
func ParseModelsInfo(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info := make(map[string]string)
	var (
		currentID   string
		description []string
	)
	flush := func() {
		if currentID != "" {
			info[currentID] = strings.Join(description, "\n")
		}
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "**"):
			flush()
			parts := strings.Split(line, "**")
			if len(parts) > 1 {
				currentID = strings.TrimSpace(parts[1])
			}
			description = nil
		case strings.HasPrefix(line, "- Model ID:"):
			currentID = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		case strings.HasPrefix(line, "- "):
			description = append(description, strings.TrimSpace(line))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return info, nil
}
