package conf

/*
   This package wraps viper for the claims merger. Configuration is read
   once from an env file when one is present, and falls back to the process
   environment for any key the file does not carry.

   Assumptions:
   1. The configuration file is an env file named local.env
   2. Once loaded, configuration stays immutable for the uptime of the
      application (the exception is test, via SetEnv/UnsetEnv)
*/

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// An instance of the viper struct holding the loaded configuration. Only
// made accessible through GetEnv, LookupEnv, SetEnv, and UnsetEnv.
var envVars viper.Viper

const (
	configgood    uint8 = 0
	noconfigfound uint8 = 1
)

var state uint8 = noconfigfound

// Possible config file locations: an explicit override first, then the
// location used by our deployment images.
var locations = []string{
	os.Getenv("MERGER_CONFIG_DIR"),
	"/etc/merger",
}

func setup(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("local")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	// Viper is lazy, do the read and parse of the config file now
	if err := v.ReadInConfig(); err != nil {
		return nil
	}
	return v
}

func init() {
	for _, loc := range locations {
		if loc == "" {
			continue
		}
		if _, err := os.Stat(loc + "/local.env"); err != nil {
			continue
		}
		if v := setup(loc); v != nil {
			envVars = *v
			state = configgood
		}
		break
	}
}

// GetEnv retrieves the value stored in conf. If it does not exist, the
// empty string is returned.
func GetEnv(key string) string {
	if state == configgood {
		if value := envVars.GetString(key); value != "" {
			return value
		}
		// Key not tracked by the config file, try the environment and
		// copy it over to conf to prevent additional OS calls.
		if value, ok := os.LookupEnv(key); ok {
			test := &testing.T{}
			_ = SetEnv(test, key, value)
			return value
		}
		return ""
	}

	return os.Getenv(key)
}

// LookupEnv augments os.LookupEnv to look in the viper struct first.
func LookupEnv(key string) (string, bool) {
	if state == configgood {
		if value := envVars.Get(key); value != nil && value != "" {
			return value.(string), true
		}
		if v, exist := os.LookupEnv(key); exist {
			test := &testing.T{}
			_ = SetEnv(test, key, v)
			return v, exist
		}
		return "", false
	}

	return os.LookupEnv(key)
}

// SetEnv adds key values into conf. This function should only be used in
// this package itself or in testing. The protect parameter is *testing.T
// to ensure developers knowingly use it in the appropriate scope.
func SetEnv(protect *testing.T, key string, value string) error {
	if state == configgood {
		envVars.Set(key, value)
		return nil
	}
	return os.Setenv(key, value)
}

// UnsetEnv "unsets" a variable. Like SetEnv, only for this package itself
// or testing.
func UnsetEnv(protect *testing.T, key string) error {
	if state == configgood {
		envVars.Set(key, "")
	}
	return os.Unsetenv(key)
}
