// package config reads checker settings from a properties file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/magiconair/properties"

	"github.com/susji/cl/analyze"
	"github.com/susji/cl/diag"
)

const DefaultFile = "cl.properties"

const (
	KeyCallResult = "check.call-result"
	KeyTrace      = "check.trace"
	KeyColor      = "diag.color"
	KeyContext    = "diag.context"
	KeyMaxErrors  = "diag.max-errors"
)

var (
	ErrUnknownKey = errors.New("unknown key")
	ErrBadValue   = errors.New("bad value")
)

var known = map[string]bool{
	KeyCallResult: true,
	KeyTrace:      true,
	KeyColor:      true,
	KeyContext:    true,
	KeyMaxErrors:  true,
}

type Config struct {
	// ErrorCallResult makes every call evaluate to the error type.
	ErrorCallResult bool
	Trace           bool
	Color           bool
	Context         bool
	MaxErrors       int
}

func Default() *Config {
	return &Config{}
}

// Load reads the configuration in path. A missing file is not an error and
// results in the defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, err
	}
	ret, err := fromProperties(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ret, nil
}

func Parse(s string) (*Config, error) {
	p, err := properties.LoadString(s)
	if err != nil {
		return nil, err
	}
	return fromProperties(p)
}

func boolean(p *properties.Properties, key string) (bool, error) {
	v, ok := p.Get(key)
	if !ok {
		return false, nil
	}
	ret, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w for %s: %q", ErrBadValue, key, v)
	}
	return ret, nil
}

func fromProperties(p *properties.Properties) (*Config, error) {
	for _, key := range p.Keys() {
		if !known[key] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	ret := Default()
	switch v := p.GetString(KeyCallResult, "return"); v {
	case "return":
	case "error":
		ret.ErrorCallResult = true
	default:
		return nil, fmt.Errorf("%w for %s: %q", ErrBadValue, KeyCallResult, v)
	}
	var err error
	if ret.Trace, err = boolean(p, KeyTrace); err != nil {
		return nil, err
	}
	if ret.Color, err = boolean(p, KeyColor); err != nil {
		return nil, err
	}
	if ret.Context, err = boolean(p, KeyContext); err != nil {
		return nil, err
	}
	if v, ok := p.Get(KeyMaxErrors); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w for %s: %q", ErrBadValue, KeyMaxErrors, v)
		}
		ret.MaxErrors = n
	}
	return ret, nil
}

// Options converts the configuration into analyzer options.
func (c *Config) Options() []analyze.Option {
	ret := []analyze.Option{}
	if c.ErrorCallResult {
		ret = append(ret, analyze.WithErrorCallResult())
	}
	return ret
}

// Emitter returns an emitter for src set up by the configuration.
func (c *Config) Emitter(w io.Writer, src []rune) *diag.Emitter {
	em := diag.NewEmitter(w, src)
	em.Color = c.Color
	em.Context = c.Context
	em.Max = c.MaxErrors
	return em
}
