package models

// FormatTag identifies which POS system's column conventions apply to a batch.
// It is chosen once per upload (detected from the header row, or supplied by
// the caller) and never changes mid-batch.
type FormatTag string

const (
	FormatSquare     FormatTag = "square"
	FormatLightspeed FormatTag = "lightspeed"
	FormatToast      FormatTag = "toast"
	FormatClover     FormatTag = "clover"
	FormatShopify    FormatTag = "shopify"
	FormatGeneric    FormatTag = "generic"
)

// ParseFormatTag validates a caller-supplied format override. The boolean is
// false for anything outside the closed set of known tags.
func ParseFormatTag(s string) (FormatTag, bool) {
	switch FormatTag(s) {
	case FormatSquare, FormatLightspeed, FormatToast, FormatClover, FormatShopify, FormatGeneric:
		return FormatTag(s), true
	}
	return "", false
}
