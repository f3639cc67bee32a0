package cli

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

// serveCommand creates the serve command for previewing exported artifacts.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve exported maps and graphs over HTTP",
		Long: `Serve exported maps and graphs over HTTP.

The serve command exposes a directory of exported artifacts (HTML maps,
SVG graphs, CSV files) on a local HTTP server, so browsers load them
with working relative paths. It binds to localhost by default and stops
on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, dir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to serve")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: addr, Handler: c.serveHandler(abs)}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printInfo("Serving %s on http://%s", abs, addr)
	printDetail("Press Ctrl+C to stop")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	printNewline()
	printSuccess("Server stopped")
	return nil
}

// serveHandler builds the file-serving router for dir.
func (c *CLI) serveHandler(dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(c.requestLogger)
	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return r
}

// requestLogger logs one line per request at info level.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		c.Logger.Infof("%s %s %d %dB %s",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start).Round(time.Millisecond))
	})
}
