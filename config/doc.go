// Package config loads imagecache configuration from YAML.
//
// Unset fields keep the values of Default. Byte sizes accept humanized
// forms ("256MiB", "1.5 GB"); durations use Go syntax ("500ms", "24h").
// String values that carry addresses or credentials pass through a
// secret.Resolver, so they may use ${ENV} expansion and secretref:
// references.
//
//	encoded:
//	  kind: redis
//	  ttl: 168h
//	  redis:
//	    addr: ${REDIS_ADDR}
//	    password: secretref:env:REDIS_PASSWORD
package config
