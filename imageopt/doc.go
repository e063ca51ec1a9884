// Package imageopt holds the resize, rotation and decode options attached to
// an image request.
//
// All option types are small comparable structs: == is their equality and
// Hash is a stable 64-bit hash consistent with it. They are consumed
// read-only by key derivation in package keypolicy.
package imageopt
