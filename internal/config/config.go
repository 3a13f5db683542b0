// Package config defines the configuration of the file server.
//
// The configuration is not read from a file or from the environment. It is
// built once at startup from fixed defaults and the location of the running
// executable, and is not modified afterwards.
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/containerd/errdefs"
	"github.com/pkg/errors"
)

const (
	// DefaultPort is the TCP port the server listens on.
	DefaultPort = 8000
	// DefaultBindAddress is the address the server binds to; empty means
	// all interfaces.
	DefaultBindAddress = ""
)

// Config is the configuration of the file server.
type Config struct {
	// Root is the absolute path of the directory being served.
	Root string
	// Port is the TCP port to listen on.
	Port int
	// BindAddress is the host part of the listen address.
	BindAddress string
}

// New returns the default configuration: the directory containing the
// running executable, served on DefaultPort on all interfaces.
func New() (*Config, error) {
	root, err := executableDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Root:        root,
		Port:        DefaultPort,
		BindAddress: DefaultBindAddress,
	}, nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate executable")
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve executable path")
	}
	return filepath.Dir(exe), nil
}

// Validate checks that the configuration can be used to start a server.
func (c *Config) Validate() error {
	if !filepath.IsAbs(c.Root) {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "root directory %q is not an absolute path", c.Root)
	}
	fi, err := os.Stat(c.Root)
	if err != nil {
		return errors.Wrapf(err, "invalid root directory %q", c.Root)
	}
	if !fi.IsDir() {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "root directory %q is not a directory", c.Root)
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.Wrapf(errdefs.ErrInvalidArgument, "invalid port %d", c.Port)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddress, strconv.Itoa(c.Port))
}

// URL returns the address users should open in a browser.
func (c *Config) URL() string {
	host := c.BindAddress
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port)) + "/"
}
