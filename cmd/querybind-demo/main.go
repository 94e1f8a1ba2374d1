// Command querybind-demo runs a small server showing querybind bindings
// synchronized with a real browser URL over a WebSocket.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/querybind"
	"github.com/vango-dev/querybind/pkg/live"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "querybind-demo",
		Short: "Demo server for URL query-string state bindings",
		Long: `querybind-demo serves a page whose query string is bound to
server-side state. Open it in a browser, edit the URL or use the back
button, and watch the bound values follow; every change is logged and
counted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var addr string
	var withMetrics bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default().With("component", "querybind-demo")

			bus := querybind.NewBus()
			bus.Subscribe(func(ev querybind.ChangeEvent) {
				logger.Info("binding changed",
					"key", ev.Key,
					"prev", ev.Prev,
					"next", ev.Next,
					"origin", ev.Origin.String())
			})

			opts := []live.ServerOption{
				live.WithLogger(logger),
				live.WithTracing("querybind-demo"),
			}
			if withMetrics {
				opts = append(opts, live.WithMetrics(live.NewMetrics()))
			}

			srv := live.NewServer(func(s *live.Session) {
				demoBindings(s, bus)
			}, opts...)

			r := chi.NewRouter()
			r.Mount("/", srv.Handler())
			if withMetrics {
				r.Handle("/metrics", promhttp.Handler())
			}

			logger.Info("listening", "addr", addr)
			return http.ListenAndServe(addr, r)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "expose Prometheus metrics at /metrics")
	return cmd
}

// demoBindings composes one set of bindings per session: a clamped page
// number, an optional search string, and a sort order.
func demoBindings(s *live.Session, bus *querybind.Bus) {
	querybind.Number(s, "page", 1,
		querybind.Min(1), querybind.Max(1000),
		querybind.Append, querybind.WithBus(bus))

	querybind.OptionalString(s, "q", nil,
		querybind.Replace, querybind.WithBus(bus))

	querybind.Enum(s, "sort", []string{"newest", "oldest", "top"}, "newest",
		querybind.WithBus(bus))
}
