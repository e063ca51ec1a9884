package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/jonwraymond/imagecache/cachekey"
	"github.com/jonwraymond/imagecache/imageopt"
)

func BenchmarkLRUStore_Get_Hit(b *testing.B) {
	ctx := context.Background()
	s := NewLRUStore[int](0, NoExpiryPolicy())
	key := cachekey.NewBitmapKey("https://img.example.com/a.jpg", imageopt.ForDimensions(256, 256), nil, nil, nil)
	_ = s.Set(ctx, key, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = s.Get(ctx, key)
	}
}

func BenchmarkLRUStore_Set_Evicting(b *testing.B) {
	ctx := context.Background()
	s := NewLRUStore[int](1024, NoExpiryPolicy())
	keys := make([]cachekey.Key, 4096)
	for i := range keys {
		keys[i] = cachekey.NewSimpleKey(fmt.Sprintf("https://img.example.com/%d.jpg", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Set(ctx, keys[i%len(keys)], i)
	}
}

func BenchmarkLoader_Hit(b *testing.B) {
	ctx := context.Background()
	l := NewLoader[int](NewLRUStore[int](0, NoExpiryPolicy()), nil)
	key := cachekey.NewSimpleKey("https://img.example.com/a.jpg")
	produce := func(context.Context) (int, error) { return 1, nil }
	_, _, _ = l.Load(ctx, key, produce)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = l.Load(ctx, key, produce)
	}
}
