// Package helpers provides shared utility functions used across the application.
// These are generic helpers that don't belong to a specific domain package.
package helpers

import "strings"

// TruncateText shortens text to the specified maximum length, adding "..." if truncated.
// Returns empty string if input is empty or only whitespace.
func TruncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return text[:maxLen]
	}
	return text[:maxLen-3] + "..."
}

// TruncatePath shortens a file path from the left, keeping the file name
// and as many trailing directories as fit in maxLen.
func TruncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}

// JoinSelectors renders path selectors for display, or all when there are none.
func JoinSelectors(selectors []string, all string) string {
	if len(selectors) == 0 {
		return all
	}
	return strings.Join(selectors, " ")
}
