package utils

import "strings"

// NormalizeKey canonicalizes a column name for matching: trimmed, lowercased,
// spaces replaced by underscores. Both row keys and alias lists go through
// this, so "Item Name", "item name" and "item_name" all collide.
func NormalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
