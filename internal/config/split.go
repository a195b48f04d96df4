package config

import "strings"

// splitList flattens comma-separated entries. Environment values arrive as one
// "a,b" element while .env and defaults may already be split.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
