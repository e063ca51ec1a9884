package keypolicy

import "github.com/PuerkitoBio/purell"

// Canonicalizer maps a source identity to its canonical form.
//
// Contract:
// - Pure: no I/O, no internal caching, same output for the same input.
// - Total: never fails; inputs it cannot handle are returned unchanged.
type Canonicalizer func(source string) string

// Identity returns source unchanged.
func Identity(source string) string { return source }

// DefaultURLFlags normalizes scheme and host case, default ports, escapes,
// dot segments and trailing slashes.
const DefaultURLFlags = purell.FlagsSafe | purell.FlagRemoveDotSegments | purell.FlagRemoveTrailingSlash

// NormalizeURL returns a Canonicalizer that normalizes URLs with the given
// purell flags. Sources that do not parse as URLs are returned unchanged.
func NormalizeURL(flags purell.NormalizationFlags) Canonicalizer {
	return func(source string) string {
		normalized, err := purell.NormalizeURLString(source, flags)
		if err != nil {
			return source
		}
		return normalized
	}
}

// Chain applies canonicalizers left to right. Nil entries are skipped.
func Chain(cs ...Canonicalizer) Canonicalizer {
	return func(source string) string {
		for _, c := range cs {
			if c != nil {
				source = c(source)
			}
		}
		return source
	}
}
