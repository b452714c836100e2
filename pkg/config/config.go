// Package config loads the YAML configuration file of the bonjour tools.
//
// Example:
//
//	version: "1.0"
//	domain: local
//	interface: eth0
//	ttl: 2m
//	browse_error_policy: continue
//	log_level: info
//	trace_log: /var/log/bonjour/discovery.blog
//	advertise:
//	  - type: _http._tcp
//	    name: Kitchen Display
//	    port: 8080
//	    txt: ["path=/", "v=1"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/bonjour-go/pkg/bonjour"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
	"github.com/mash-protocol/bonjour-go/pkg/version"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the file configuration.
type Config struct {
	// Version is the file format version. Empty is read as the current
	// format.
	Version string `yaml:"version"`

	Domain            string        `yaml:"domain"`
	Interface         string        `yaml:"interface"`
	TTL               time.Duration `yaml:"ttl"`
	BrowseErrorPolicy string        `yaml:"browse_error_policy"`
	LogLevel          string        `yaml:"log_level"`
	TraceLog          string        `yaml:"trace_log"`
	Advertise         []Service     `yaml:"advertise"`
}

// Service is a service advertised at startup.
type Service struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
	Port uint16 `yaml:"port"`

	// TXT entries in "key=value" or "key" form, in record order.
	TXT []string `yaml:"txt"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Domain:            dnssd.DefaultDomain,
		TTL:               dnssd.DefaultConfig().TTL,
		BrowseErrorPolicy: bonjour.ContinueOnError.String(),
		LogLevel:          "info",
	}
}

// Load reads and validates the configuration file at path. Fields missing
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := version.CheckConfig(c.Version); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.TTL < 0 {
		return fmt.Errorf("%w: negative ttl %s", ErrInvalid, c.TTL)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, svc := range c.Advertise {
		if err := dnssd.ValidateServiceType(svc.Type); err != nil {
			return fmt.Errorf("%w: advertise[%d]: %v", ErrInvalid, i, err)
		}
		if seen[svc.Type] {
			return fmt.Errorf("%w: advertise[%d]: service type %s listed twice", ErrInvalid, i, svc.Type)
		}
		seen[svc.Type] = true
		if svc.Port == 0 {
			return fmt.Errorf("%w: advertise[%d]: port is required", ErrInvalid, i)
		}
		if _, err := svc.Record(); err != nil {
			return fmt.Errorf("%w: advertise[%d]: %v", ErrInvalid, i, err)
		}
	}
	return nil
}

// Policy returns the parsed browse error policy.
func (c *Config) Policy() (bonjour.BrowseErrorPolicy, error) {
	p, err := bonjour.ParseBrowseErrorPolicy(c.BrowseErrorPolicy)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return p, nil
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return l, nil
}

// Library returns the discovery library configuration.
func (c *Config) Library() dnssd.Config {
	lc := dnssd.DefaultConfig()
	lc.Interface = c.Interface
	lc.TTL = c.TTL
	return lc
}

// Record parses the service's TXT entries.
func (s Service) Record() (txt.Record, error) {
	var r txt.Record
	for _, entry := range s.TXT {
		p, err := txt.Parse(entry)
		if err != nil {
			return nil, err
		}
		r = append(r, p)
	}
	return r, nil
}

// Info converts the service to an advertise request.
func (s Service) Info(domain string) (*bonjour.AdvertiseInfo, error) {
	r, err := s.Record()
	if err != nil {
		return nil, err
	}
	return &bonjour.AdvertiseInfo{
		ServiceType: s.Type,
		Name:        s.Name,
		Domain:      domain,
		Port:        s.Port,
		TXT:         r,
	}, nil
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
