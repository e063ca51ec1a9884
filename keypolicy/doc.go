// Package keypolicy derives cache keys for the three image cache tiers.
//
// A Factory maps a request to:
//
//   - a BitmapKey for the decoded bitmap tier,
//   - a BitmapKey with postprocessor fields for the postprocessed tier,
//   - a SimpleKey for the encoded bytes tier.
//
// Derivation is a pure function of the request: no hidden state, no clock,
// no randomness. The caller context is accepted for interface uniformity
// and never read. Source identities pass through a Canonicalizer injected
// at construction; the default is Identity.
package keypolicy
