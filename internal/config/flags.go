package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// bindFlags registers the launch flags on fs.
//
// Flags:
//
//	-c/--config          application configuration file
//	--base-path          directory application folders live under
//	--context            execution context ("browser" or "command line")
//	--log-level          process log level
//	--secret             passphrase for sealed request parameters
//	-a/--address         server address in format [host]:[port]
//	--request-timeout    request timeout (e.g., "30s", "1m")
//	--shutdown-timeout   graceful shutdown timeout
//	-w/--watch           reload the configuration file on change
//	--watch-debounce     delay collapsing file events
func bindFlags(fs *pflag.FlagSet, cfg *StructuredConfig) {
	fs.StringVarP(&cfg.App.ConfigFile, "config", "c", "", "Application configuration file")
	fs.StringVar(&cfg.App.BasePath, "base-path", "", "Directory application folders live under")
	fs.StringVar(&cfg.App.Context, "context", "", "Execution context (browser, command line)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.App.Secret, "secret", "", "Passphrase for sealed request parameters")

	fs.VarP(&addressFlag{target: &cfg.Server.HTTPAddress}, "address", "a", "Net address host:port")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")

	fs.BoolVarP(&cfg.Workers.Watch, "watch", "w", false, "Reload the configuration file on change")
	fs.DurationVar(&cfg.Workers.WatchDebounce, "watch-debounce", 0, "Delay collapsing file events")
}

// addressFlag validates a host:port flag through NetAddress and stores its
// canonical form.
type addressFlag struct {
	target *string
	addr   NetAddress
}

func (f *addressFlag) String() string { return f.addr.String() }
func (f *addressFlag) Type() string   { return f.addr.Type() }

func (f *addressFlag) Set(s string) error {
	if err := f.addr.Set(s); err != nil {
		return err
	}
	*f.target = f.addr.String()
	return nil
}

// String returns a canonical host:port string for a NetAddress.
// An unset address is the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
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

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
