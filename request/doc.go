// Package request describes a single image fetch: its source, the resize,
// rotation and decode options, and an optional postprocessor.
//
// Postprocessors identify themselves with an explicit, registered Name
// rather than their Go type, so key derivation does not depend on runtime
// type names.
package request
