package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openeia/eiascout/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached API responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisAddr != "" {
				return clearRedisCache(cmd.Context(), redisAddr)
			}
			return clearFileCache(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&redisAddr, "redis", "", "clear the Redis cache at this address instead")

	return cmd
}

func clearRedisCache(ctx context.Context, addr string) error {
	store, err := cache.NewRedisCache(ctx, addr, "")
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Flush(ctx); err != nil {
		return err
	}
	printSuccess("Cleared Redis cache at %s", addr)
	return nil
}

func clearFileCache(ctx context.Context) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	count := 0
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			count++
		}
		return nil
	})

	store, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if f, ok := store.(cache.Flusher); ok {
		if err := f.Flush(ctx); err != nil {
			return err
		}
	}

	printSuccess("Cleared %d cached entries", count)
	printDetail("Directory: %s", dir)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
