package database

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
)

// NewMemcached connects to server and verifies it answers.
func NewMemcached(server string, timeout time.Duration) (*memcache.Client, error) {
	client := memcache.New(server)
	if timeout > 0 {
		client.Timeout = timeout
	}
	if err := client.Ping(); err != nil {
		return nil, errors.Wrapf(err, "memcached %s unreachable", server)
	}
	return client, nil
}
