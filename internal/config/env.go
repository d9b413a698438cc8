package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// DefaultEnvFiles lists the dotenv files consulted, in priority order:
// the working directory first, then the user config directory.
func DefaultEnvFiles() []string {
	return []string{
		".env",
		filepath.Join(xdg.ConfigHome, "kudos", "env"),
	}
}

// LoadEnvFiles copies variables from the given dotenv files into the
// process environment. Variables already set are left alone and missing
// files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		err := godotenv.Load(p)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return err
	}
	return nil
}

// CredentialsFrom reads the canonical credential variables through lookup.
func CredentialsFrom(lookup LookupFunc) Credentials {
	email, _ := lookup(EnvEmail)
	password, _ := lookup(EnvPassword)
	return Credentials{Email: email, Password: password}
}

// FromLookup returns the default config with credentials from lookup.
// The result is not validated.
func FromLookup(lookup LookupFunc) Config {
	cfg := Default()
	cfg.Credentials = CredentialsFrom(lookup)
	return cfg
}
