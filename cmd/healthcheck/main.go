// Command healthcheck probes the liveness root of a running ingress server
// and exits non-zero when it is not healthy. It is meant for container
// HEALTHCHECK instructions.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/MKhiriev/go-ingress/internal/logger"
	"github.com/MKhiriev/go-ingress/internal/utils"
)

func main() {
	url := flag.String("url", "http://127.0.0.1:5679", "base URL of the server")
	path := flag.String("path", "/", "liveness path")
	timeout := flag.Duration("timeout", 3*time.Second, "probe timeout")
	flag.Parse()

	log := logger.NewLogger("go-ingress-healthcheck", "info")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := utils.NewHTTPClient(*url, *timeout)
	if err := client.CheckHealth(ctx, *path); err != nil {
		log.Error().Err(err).Str("url", *url).Msg("health check failed")
		cancel()
		os.Exit(1)
	}

	log.Debug().Str("url", *url).Msg("healthy")
}
