// Package secret resolves credentials referenced from cache configuration,
// such as the Redis password of the encoded tier.
//
// A value is first expanded against the environment (see ExpandEnvStrict),
// then any "secretref:<provider>:<ref>" reference is resolved:
//
//	password: secretref:env:IMAGECACHE_REDIS_PASSWORD
//	password: secretref:file:redis-password
//	url: redis://default:secretref:env:REDIS_PW@cache:6379/0
//
// The env provider reads a variable; the file provider reads a mounted
// secret file relative to its directory.
package secret
