package pipeline

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/imagecache/cache"
	"github.com/jonwraymond/imagecache/config"
	"github.com/jonwraymond/imagecache/health"
	"github.com/jonwraymond/imagecache/keypolicy"
	"github.com/jonwraymond/imagecache/request"
)

func fetchBytes(b string) cache.ProduceFunc[[]byte] {
	return func(context.Context) ([]byte, error) { return []byte(b), nil }
}

func TestFromConfig_Default(t *testing.T) {
	p, err := FromConfig[string](context.Background(), nil, nil, nil)
	require.NoError(t, err)
	defer p.Close()

	assert.Same(t, keypolicy.Default(), p.Factory())
	assert.IsType(t, &cache.LRUStore[string]{}, p.bitmap)
	assert.IsType(t, &cache.LRUStore[[]byte]{}, p.encoded)
	assert.NotNil(t, p.exec.CircuitBreaker())
	assert.NotNil(t, p.bulkhead)
	assert.Nil(t, p.limiter)
}

func TestFromConfig_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Bitmap.Kind = "arc"
	_, err := FromConfig[string](context.Background(), cfg, nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalidTierKind)
}

func TestFromConfig_RistrettoNeedsCost(t *testing.T) {
	cfg := config.Default()
	cfg.Bitmap.Kind = config.KindRistretto

	_, err := FromConfig[string](context.Background(), cfg, nil, nil)
	require.ErrorIs(t, err, ErrNoCost)

	p, err := FromConfig(context.Background(), cfg, nil, func(s string) int64 { return int64(len(s)) })
	require.NoError(t, err)
	defer p.Close()
	assert.IsType(t, &cache.RistrettoStore[string]{}, p.bitmap)
	assert.Equal(t, uint64(cfg.Bitmap.MaxCost), p.memBudget)
}

func TestFromConfig_NormalizeURLs(t *testing.T) {
	cfg := config.Default()
	cfg.KeyPolicy.NormalizeURLs = true
	p, err := FromConfig[string](context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = p.Encoded(ctx, request.New("HTTPS://CDN.example.com:443/photos/42.jpg"), nil, fetchBytes("jpeg"))
	require.NoError(t, err)

	ok, err := p.IsInEncodedCache(ctx, request.New("https://cdn.example.com/photos/42.jpg"))
	require.NoError(t, err)
	assert.True(t, ok, "equivalent URLs share an encoded entry")
}

func TestFromConfig_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Encoded.Kind = config.KindRedis
	cfg.Encoded.Redis.Addr = mr.Addr()

	p, err := FromConfig[string](context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	defer p.Close()

	ctx := context.Background()
	got, err := p.Encoded(ctx, request.New(photo), nil, fetchBytes("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(got))

	rs, ok := p.encoded.(*cache.RedisStore)
	require.True(t, ok)
	stored, err := mr.Get(rs.Name(p.Factory().EncodedKey(request.New(photo), nil)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", stored)
	assert.Positive(t, mr.TTL(rs.Name(p.Factory().EncodedKey(request.New(photo), nil))))

	agg := health.NewAggregator()
	p.RegisterHealth(agg)
	assert.ElementsMatch(t, []string{"encoded.redis", "encoded.circuit", "memory"}, agg.CheckerNames())
	res, err := agg.Check(ctx, "encoded.redis")
	require.NoError(t, err)
	assert.NotEqual(t, health.StatusUnhealthy, res.Status)

	mr.SetError("LOADING redis is loading the dataset")
	res, err = agg.Check(ctx, "encoded.redis")
	require.NoError(t, err)
	assert.Equal(t, health.StatusUnhealthy, res.Status)
}

func TestFromConfig_RedisURL(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Encoded.Kind = config.KindRedis
	cfg.Encoded.Redis.URL = "redis://" + mr.Addr() + "/0"

	p, err := FromConfig[string](context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Encoded(context.Background(), request.New(photo), nil, fetchBytes("jpeg"))
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 1)

	cfg.Encoded.Redis.URL = "mysql://nope"
	_, err = FromConfig[string](context.Background(), cfg, nil, nil)
	assert.Error(t, err)
}

func TestFromConfig_File(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Encoded.Kind = config.KindFile
	cfg.Encoded.File.Dir = dir

	p, err := FromConfig[string](context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = p.Encoded(ctx, request.New(photo), nil, fetchBytes("jpeg"))
	require.NoError(t, err)

	fs, ok := p.encoded.(*cache.FileStore)
	require.True(t, ok)
	data, err := os.ReadFile(fs.Path(p.Factory().EncodedKey(request.New(photo), nil)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	agg := health.NewAggregator()
	p.RegisterHealth(agg)
	assert.Contains(t, agg.CheckerNames(), "encoded.file")
}

func TestFromConfig_FileTTL(t *testing.T) {
	cfg := config.Default()
	cfg.Encoded.Kind = config.KindFile
	cfg.Encoded.File.Dir = t.TempDir()
	cfg.Encoded.TTL = time.Hour

	p, err := FromConfig[string](context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	req := request.New(photo)
	_, err = p.Encoded(ctx, req, nil, fetchBytes("jpeg"))
	require.NoError(t, err)

	path := p.encoded.(*cache.FileStore).Path(p.Factory().EncodedKey(req, nil))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	ok, err := p.IsInEncodedCache(ctx, req)
	require.NoError(t, err)
	assert.False(t, ok, "entry older than encoded.ttl still served")
}
