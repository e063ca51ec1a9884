package health_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/imagecache/health"
)

func ExampleAggregator() {
	agg := health.NewAggregator()
	agg.Register("file", health.NewStoreChecker("file", func(context.Context) error { return nil }, health.StoreCheckerConfig{}))
	agg.Register("redis", health.NewCheckerFunc("redis", func(context.Context) health.Result {
		return health.Degraded("replica lagging")
	}))

	results := agg.CheckAll(context.Background())
	for _, name := range agg.CheckerNames() {
		fmt.Println(name, results[name].Status)
	}
	fmt.Println("overall:", health.Overall(results))
	// Output:
	// file healthy
	// redis degraded
	// overall: degraded
}
