package imageopt

import (
	"testing"
	"time"
)

func TestResize_Defaults(t *testing.T) {
	r := Resize(100, 200)
	if r.Width != 100 || r.Height != 200 {
		t.Errorf("Resize() = %dx%d, want 100x200", r.Width, r.Height)
	}
	if r.MaxBitmapDimension != DefaultMaxBitmapDimension {
		t.Errorf("MaxBitmapDimension = %g, want %g", r.MaxBitmapDimension, DefaultMaxBitmapDimension)
	}
	if r.RoundUpFraction != DefaultRoundUpFraction {
		t.Errorf("RoundUpFraction = %g, want %g", r.RoundUpFraction, DefaultRoundUpFraction)
	}
	if ForSquareSize(64) != Resize(64, 64) {
		t.Error("ForSquareSize(64) should equal Resize(64, 64)")
	}
}

func TestForDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantNil bool
	}{
		{"positive", 10, 20, false},
		{"zero width", 0, 20, true},
		{"zero height", 10, 0, true},
		{"negative", -1, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForDimensions(tt.w, tt.h)
			if (got == nil) != tt.wantNil {
				t.Fatalf("ForDimensions(%d, %d) = %v, wantNil %v", tt.w, tt.h, got, tt.wantNil)
			}
			if got != nil && *got != Resize(tt.w, tt.h) {
				t.Errorf("ForDimensions(%d, %d) = %v, want %v", tt.w, tt.h, *got, Resize(tt.w, tt.h))
			}
		})
	}
}

func TestResize_HashConsistentWithEquality(t *testing.T) {
	a := Resize(100, 100)
	b := Resize(100, 100)
	c := Resize(200, 200)

	if a.Hash() != b.Hash() {
		t.Errorf("equal options should hash equally: %d != %d", a.Hash(), b.Hash())
	}
	if a.Hash() == c.Hash() {
		t.Errorf("different options should (almost surely) hash differently: %d", a.Hash())
	}
}

func TestRotation_Constructors(t *testing.T) {
	tests := []struct {
		name        string
		opts        RotationOptions
		useMetadata bool
		enabled     bool
		angle       int
		deferred    bool
	}{
		{"auto", AutoRotate(), true, true, 0, false},
		{"auto at render", AutoRotateAtRenderTime(), true, true, 0, true},
		{"disabled", DisableRotation(), false, false, 0, false},
		{"force 90", ForceRotation(90), false, true, 90, false},
		{"force 450", ForceRotation(450), false, true, 90, false},
		{"force -90", ForceRotation(-90), false, true, 270, false},
		{"force 45", ForceRotation(45), false, true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.UseImageMetadata(); got != tt.useMetadata {
				t.Errorf("UseImageMetadata() = %v, want %v", got, tt.useMetadata)
			}
			if got := tt.opts.RotationEnabled(); got != tt.enabled {
				t.Errorf("RotationEnabled() = %v, want %v", got, tt.enabled)
			}
			if got := tt.opts.ForcedAngle(); got != tt.angle {
				t.Errorf("ForcedAngle() = %d, want %d", got, tt.angle)
			}
			if got := tt.opts.CanDeferUntilRendered(); got != tt.deferred {
				t.Errorf("CanDeferUntilRendered() = %v, want %v", got, tt.deferred)
			}
		})
	}
}

func TestRotation_DistinctHashes(t *testing.T) {
	all := []RotationOptions{
		AutoRotate(),
		AutoRotateAtRenderTime(),
		DisableRotation(),
		ForceRotation(0),
		ForceRotation(90),
		ForceRotation(180),
		ForceRotation(270),
	}

	seen := make(map[uint64]string)
	for _, r := range all {
		if prev, ok := seen[r.Hash()]; ok {
			t.Errorf("hash collision between %s and %s", prev, r)
		}
		seen[r.Hash()] = r.String()
	}
}

func TestDecodeOptions_Defaults(t *testing.T) {
	d := Defaults()
	if d.MinDecodeInterval != 100*time.Millisecond {
		t.Errorf("MinDecodeInterval = %v, want 100ms", d.MinDecodeInterval)
	}
	if d.BitmapConfig != ARGB8888 {
		t.Errorf("BitmapConfig = %v, want %v", d.BitmapConfig, ARGB8888)
	}
	if d != Defaults() {
		t.Error("Defaults() should be equal across calls")
	}

	changed := d
	changed.ForceStaticImage = true
	if changed == d || changed.Hash() == d.Hash() {
		t.Error("changing a field should change equality and hash")
	}
}

func TestBitmapConfig_String(t *testing.T) {
	tests := []struct {
		cfg  BitmapConfig
		want string
	}{
		{ARGB8888, "argb8888"},
		{RGB565, "rgb565"},
		{Alpha8, "alpha8"},
		{RGBAF16, "rgbaf16"},
		{BitmapConfig(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cfg.String(); got != tt.want {
			t.Errorf("BitmapConfig(%d).String() = %q, want %q", int(tt.cfg), got, tt.want)
		}
	}
}
