package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line arguments into a sparse [StructuredConfig]:
// only fields whose flags were given are non-zero.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-host interface the HTTP server binds to
//	-p HTTP server port
//	-metrics-address metrics server address in format [host]:[port]
//	-c/-config YAML or JSON file path with configs
//	-log-level zerolog level name
//	-origins comma separated origin allow-list
//	-upload-dir directory for staged uploads
//	-static-prefix URL prefix of static files
//	-static-dir directory of static files
//	-telemetry enable OpenTelemetry tracing
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("ingress", flag.ContinueOnError)

	var serverAddress, metricsAddress NetAddress
	var host string
	var port int
	var configPath string
	var logLevel string
	var origins string
	var uploadDir string
	var staticPrefix, staticDir string
	var telemetry bool

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&host, "host", "", "HTTP server host")
	fs.IntVar(&port, "p", 0, "HTTP server port")
	fs.Var(&metricsAddress, "metrics-address", "Net metrics server address host:port")
	fs.StringVar(&configPath, "c", "", "YAML or JSON config file path")
	fs.StringVar(&configPath, "config", "", "YAML or JSON config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&origins, "origins", "", "Comma separated allowed origins")
	fs.StringVar(&uploadDir, "upload-dir", "", "Directory for staged uploads")
	fs.StringVar(&staticPrefix, "static-prefix", "", "URL prefix of static files")
	fs.StringVar(&staticDir, "static-dir", "", "Directory of static files")
	fs.BoolVar(&telemetry, "telemetry", false, "Enable OpenTelemetry tracing")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Server: Server{
			Host:           host,
			Port:           port,
			MetricsAddress: metricsAddress.String(),
		},
		CORS: CORS{
			AllowedOrigins: splitList(origins),
		},
		Uploads: Uploads{
			TempDir: uploadDir,
		},
		Static: Static{
			URLPrefix: staticPrefix,
			Dir:       staticDir,
		},
		Telemetry: Telemetry{
			Enabled: telemetry,
		},
		ConfigFilePath: configPath,
	}

	// -a wins over -host and -p
	if serverAddress.Port != 0 {
		cfg.Server.Host = serverAddress.Host
		cfg.Server.Port = serverAddress.Port
	}

	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host binds all interfaces. Otherwise the host must be "localhost"
// or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number is a positive integer up to 65535")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
