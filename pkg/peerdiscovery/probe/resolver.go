package probe

import (
	"context"
	"net"
	"time"

	"github.com/projectdiscovery/gcache"
)

// Resolver defaults
const (
	DefaultResolverCacheSize = 1024
	DefaultResolverCacheTTL  = 5 * time.Minute
)

// Resolver turns a host string into an IPv4 address. Literal addresses are
// returned as-is, names go through net.Resolver and are cached.
type Resolver struct {
	resolver *net.Resolver
	cache    gcache.Cache[string, net.IP]
}

// NewResolver creates a resolver whose LRU cache holds size names for ttl.
// Non-positive values select the defaults.
func NewResolver(size int, ttl time.Duration) *Resolver {
	if size <= 0 {
		size = DefaultResolverCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultResolverCacheTTL
	}
	return &Resolver{
		resolver: net.DefaultResolver,
		cache: gcache.New[string, net.IP](size).
			LRU().
			Expiration(ttl).
			Build(),
	}
}

// Resolve returns the IPv4 address of host. Failures are *net.DNSError or
// *net.AddrError values.
func (r *Resolver) Resolve(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
		return nil, &net.AddrError{Err: "not an IPv4 address", Addr: host}
	}

	if ip, err := r.cache.Get(host); err == nil {
		return ip, nil
	}

	addrs, err := r.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	for _, addr := range addrs {
		if ip4 := addr.IP.To4(); ip4 != nil {
			_ = r.cache.Set(host, ip4)
			return ip4, nil
		}
	}
	return nil, &net.DNSError{Err: "no IPv4 address", Name: host, IsNotFound: true}
}
