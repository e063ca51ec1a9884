package imageopt

import "strconv"

const (
	useMetadataAngle = -1
	disabledAngle    = -2
)

// RotationOptions describes how a decoded image is rotated.
//
// The zero value is a forced rotation of 0 degrees. Use AutoRotate for the
// usual behavior of honoring the image's EXIF orientation.
type RotationOptions struct {
	angle              int
	deferUntilRendered bool
}

// AutoRotate rotates according to the image metadata at decode time.
func AutoRotate() RotationOptions {
	return RotationOptions{angle: useMetadataAngle}
}

// AutoRotateAtRenderTime rotates according to the image metadata, but lets
// the renderer apply the rotation instead of the decoder.
func AutoRotateAtRenderTime() RotationOptions {
	return RotationOptions{angle: useMetadataAngle, deferUntilRendered: true}
}

// DisableRotation never rotates the image.
func DisableRotation() RotationOptions {
	return RotationOptions{angle: disabledAngle}
}

// ForceRotation rotates by a fixed angle, ignoring metadata. The angle is
// reduced modulo 360; anything other than a quarter turn becomes 0.
func ForceRotation(angle int) RotationOptions {
	angle %= 360
	if angle < 0 {
		angle += 360
	}
	if angle%90 != 0 {
		angle = 0
	}
	return RotationOptions{angle: angle}
}

// UseImageMetadata reports whether the rotation angle comes from metadata.
func (r RotationOptions) UseImageMetadata() bool {
	return r.angle == useMetadataAngle
}

// RotationEnabled reports whether any rotation is applied.
func (r RotationOptions) RotationEnabled() bool {
	return r.angle != disabledAngle
}

// ForcedAngle returns the fixed rotation angle. It returns 0 when the angle
// comes from metadata or rotation is disabled.
func (r RotationOptions) ForcedAngle() int {
	if r.angle < 0 {
		return 0
	}
	return r.angle
}

// CanDeferUntilRendered reports whether the renderer may apply the rotation.
func (r RotationOptions) CanDeferUntilRendered() bool {
	return r.deferUntilRendered
}

// Hash returns a stable hash consistent with ==.
func (r RotationOptions) Hash() uint64 {
	h := newHasher('O')
	h.int(r.angle)
	h.bool(r.deferUntilRendered)
	return h.sum()
}

func (r RotationOptions) String() string {
	var s string
	switch r.angle {
	case useMetadataAngle:
		s = "auto"
	case disabledAngle:
		s = "disabled"
	default:
		s = strconv.Itoa(r.angle)
	}
	if r.deferUntilRendered {
		s += "/deferred"
	}
	return s
}
