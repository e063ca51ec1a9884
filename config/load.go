package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/imagecache/secret"
)

// Load reads and parses the file at path.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(ctx, data)
}

// Parse decodes data over Default, resolves secrets and validates.
// Unknown fields are rejected.
func Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.ResolveSecrets(ctx, secret.DefaultRegistry); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveSecrets expands the environment and secret references in the
// fields that may carry them.
func (c *Config) ResolveSecrets(ctx context.Context, registry *secret.Registry) error {
	res, err := registry.NewResolverFromConfig(c.Secrets.Strict, c.Secrets.Providers)
	if err != nil {
		return fmt.Errorf("config: secrets: %w", err)
	}
	defer res.Close()

	fields := map[string]*string{
		"observe.serviceName":    &c.Observe.ServiceName,
		"encoded.redis.url":      &c.Encoded.Redis.URL,
		"encoded.redis.addr":     &c.Encoded.Redis.Addr,
		"encoded.redis.username": &c.Encoded.Redis.Username,
		"encoded.redis.password": &c.Encoded.Redis.Password,
		"encoded.redis.prefix":   &c.Encoded.Redis.Prefix,
		"encoded.file.dir":       &c.Encoded.File.Dir,
	}
	for name, field := range fields {
		if *field == "" {
			continue
		}
		v, err := res.ResolveValue(ctx, *field)
		if err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
		*field = v
	}
	return nil
}
