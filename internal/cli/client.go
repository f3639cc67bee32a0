package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/openeia/eiascout/pkg/cache"
	"github.com/openeia/eiascout/pkg/creds"
	"github.com/openeia/eiascout/pkg/eia"
	"github.com/openeia/eiascout/pkg/geomap"
)

// clientOpts holds the flags shared by every command that talks to the API.
type clientOpts struct {
	cache     bool          // cache responses on disk
	redisAddr string        // cache responses in Redis instead
	refresh   bool          // bypass cache reads, still store fresh responses
	delay     time.Duration // pause before every API call
}

// addClientFlags registers the shared API flags on cmd.
func addClientFlags(cmd *cobra.Command, opts *clientOpts) {
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "cache API responses on disk")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "cache API responses in Redis at this address")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached responses")
	cmd.Flags().DurationVar(&opts.delay, "delay", eia.DefaultCallDelay, "pause before every API call")
}

// newClient builds an API client from stored credentials and the shared
// flags. The returned cleanup closes the cache backend and must be called
// once the command is done.
func (c *CLI) newClient(ctx context.Context, opts *clientOpts) (*eia.Client, func(), error) {
	cred, err := creds.Load()
	if err != nil {
		return nil, nil, err
	}
	key, err := cred.RequireAPIKey()
	if err != nil {
		printAPIKeyHelp()
		return nil, nil, err
	}

	store, err := newCacheBackend(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	client, err := eia.NewClient(eia.Config{
		APIKey:    key,
		CallDelay: opts.delay,
		Cache:     store,
		Refresh:   opts.refresh,
		Logger: func(format string, args ...any) {
			c.Logger.Debugf(format, args...)
		},
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return client, func() { _ = store.Close() }, nil
}

// newCacheBackend selects the response cache from the flags. Caching is
// off unless asked for; a Redis address wins over the on-disk cache.
func newCacheBackend(ctx context.Context, opts *clientOpts) (cache.Cache, error) {
	switch {
	case opts.redisAddr != "":
		return cache.NewRedisCache(ctx, opts.redisAddr, "")
	case opts.cache:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/eiascout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// printAPIKeyHelp lists the ways to supply the EIA API key.
func printAPIKeyHelp() {
	printWarning("No EIA API key configured")
	printDetail("Supply one via:")
	printDetail("  1. export %s=...", creds.EnvAPIKey)
	printDetail("  2. %s=... in a .env file", creds.EnvAPIKey)
	if path, err := creds.ConfigPath(); err == nil {
		printDetail("  3. api_key = \"...\" in %s", path)
	}
	printNextStep("Register for a free key", "https://www.eia.gov/opendata/register/")
}

// errorHint suggests a fix for well-known failure modes. Empty when the
// error speaks for itself.
func errorHint(err error) string {
	var statusErr *eia.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == 403 {
		return "a 403 from the API usually means an invalid or not yet activated API key"
	}
	var decodeErr *eia.DecodeError
	if errors.As(err, &decodeErr) {
		return "the API answered with an unexpected shape; retry with --refresh in case a stale response was cached"
	}
	if errors.Is(err, geomap.ErrNoTileKey) {
		return fmt.Sprintf("set %s to render map tiles (free at https://www.maptiler.com/)", creds.EnvTileKey)
	}
	return ""
}

// reportError prints the hint for known failure modes and passes the
// error back to cobra.
func reportError(err error) error {
	if err == nil {
		return nil
	}
	if hint := errorHint(err); hint != "" {
		printWarning("%s", hint)
	}
	return err
}
