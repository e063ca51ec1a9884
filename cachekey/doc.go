// Package cachekey defines the keys that address the image cache tiers.
//
// Key is a closed variant with two members:
//
//   - BitmapKey carries the source identity together with the resize,
//     rotation and decode options and an optional postprocessor component.
//     It addresses the decoded and postprocessed bitmap tiers.
//   - SimpleKey wraps a single identity string. It addresses the encoded
//     bytes tier, where only the source matters.
//
// Keys are immutable once constructed, compare by value through Equal, and
// carry a Hash consistent with Equal. An absent optional field is distinct
// from every present value.
package cachekey
