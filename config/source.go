package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Source supplies configuration values by name.
type Source interface {
	// Lookup returns the value for key and whether it is set.
	Lookup(key string) (string, bool)
}

// EnvSource reads from the process environment.
type EnvSource struct{}

// Lookup reads the variable via os.LookupEnv.
func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource reads from a fixed map. Useful in tests and for parsed files.
type MapSource map[string]string

// Lookup returns the map entry for key.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ChainSource consults sources in order and returns the first hit.
type ChainSource []Source

// Lookup returns the first source's value for key.
func (c ChainSource) Lookup(key string) (string, bool) {
	for _, src := range c {
		if v, ok := src.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// DotenvSource parses dotenv files into a MapSource without mutating the
// process environment. Later files win over earlier ones.
func DotenvSource(filenames ...string) (MapSource, error) {
	values, err := godotenv.Read(filenames...)
	if err != nil {
		return nil, err
	}
	return MapSource(values), nil
}
