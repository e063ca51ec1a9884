package cachekey_test

import (
	"fmt"

	"github.com/jonwraymond/imagecache/cachekey"
	"github.com/jonwraymond/imagecache/imageopt"
)

func ExampleNewBitmapKey() {
	small := imageopt.Resize(100, 100)
	large := imageopt.Resize(200, 200)

	a := cachekey.NewBitmapKey("https://x/a.jpg", &small, nil, nil, nil)
	b := cachekey.NewBitmapKey("https://x/a.jpg", &small, nil, nil, nil)
	c := cachekey.NewBitmapKey("https://x/a.jpg", &large, nil, nil, nil)

	fmt.Println("same options equal:", a.Equal(b))
	fmt.Println("different resize equal:", a.Equal(c))
	// Output:
	// same options equal: true
	// different resize equal: false
}

func ExampleNewSimpleKey() {
	k := cachekey.NewSimpleKey("https://x/a.jpg")
	fmt.Println(k)
	fmt.Println(k.Equal(cachekey.NewSimpleKey("https://x/a.jpg")))
	// Output:
	// simple("https://x/a.jpg")
	// true
}
