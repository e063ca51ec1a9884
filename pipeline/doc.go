// Package pipeline serves images from three cache tiers whose keys come
// from a keypolicy.Factory.
//
//   - bitmap: decoded images keyed by Factory.BitmapKey
//   - postprocessed: postprocessor output keyed by
//     Factory.PostprocessedBitmapKey
//   - encoded: fetched bytes keyed by Factory.EncodedKey
//
// A request without a postprocessor has the same postprocessed and bitmap
// key, so Postprocessed answers from the bitmap tier. Encoded-tier calls
// run through a resilience.Executor, and origin fetches pass a bulkhead
// and an optional rate limiter. A failing encoded tier degrades to a
// miss: the image is fetched again rather than the request failing.
//
// Values returned from any tier are shared with the cache and must not be
// modified.
package pipeline
