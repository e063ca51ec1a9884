package observe_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/imagecache/observe"
)

func ExampleNewObserver() {
	cfg := observe.Config{
		ServiceName: "imagecache",
		Version:     "1.0.0",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Logging:     observe.LoggingConfig{Enabled: false},
	}

	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() { _ = obs.Shutdown(ctx) }()

	fmt.Println("observer ready")
	// Output:
	// observer ready
}

func ExampleConfig_Validate() {
	cfg := observe.Config{ServiceName: ""}
	if errors.Is(cfg.Validate(), observe.ErrMissingServiceName) {
		fmt.Println("service name is required")
	}
	// Output:
	// service name is required
}

func ExampleMiddleware_Lookup() {
	mw := observe.NewMiddleware(nil, nil, nil)

	hit, err := mw.Lookup(context.Background(),
		observe.LookupMeta{Tier: observe.TierBitmap},
		func(ctx context.Context) (bool, error) { return true, nil },
	)
	fmt.Println(hit, err)
	// Output:
	// true <nil>
}

func ExampleLookupMeta_SpanName() {
	meta := observe.LookupMeta{Tier: observe.TierEncoded, Operation: observe.OpProbe}
	fmt.Println(meta.SpanName())
	// Output:
	// cache.encoded.probe
}
