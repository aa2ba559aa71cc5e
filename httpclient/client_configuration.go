// httpclient/client_configuration.go
// Description: This file contains functions to load and validate configuration values from an appsettings file or environment variables.
package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/deploymenttheory/go-api-contagem-client/logger"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = logger.LogOutputConsole
	DefaultLogConsoleSeparator   = "	"
	DefaultCustomTimeout         = 10 * time.Second
	DefaultMaxRedirects          = 5
)

// Configuration keys, matching the appsettings.json layout of the counting API consumers.
const (
	keyBaseURL             = "APIContagem_Access.UrlBase"
	keyUserID              = "APIContagem_Access.UserID"
	keyPassword            = "APIContagem_Access.Password"
	keyLogLevel            = "Logging.LogLevel"
	keyLogOutputFormat     = "Logging.LogOutputFormat"
	keyLogConsoleSeparator = "Logging.LogConsoleSeparator"
	keyHideSensitiveData   = "Logging.HideSensitiveData"
	keyProxyURL            = "ClientOptions.ProxyURL"
	keyProxyUsername       = "ClientOptions.ProxyUsername"
	keyProxyPassword       = "ClientOptions.ProxyPassword"
	keyCustomTimeout       = "ClientOptions.CustomTimeout"
	keyFollowRedirects     = "ClientOptions.FollowRedirects"
	keyMaxRedirects        = "ClientOptions.MaxRedirects"
)

// envBindings maps every configuration key to the environment variable overriding it.
var envBindings = map[string]string{
	keyBaseURL:             "APICONTAGEM_ACCESS_URLBASE",
	keyUserID:              "APICONTAGEM_ACCESS_USERID",
	keyPassword:            "APICONTAGEM_ACCESS_PASSWORD",
	keyLogLevel:            "LOG_LEVEL",
	keyLogOutputFormat:     "LOG_OUTPUT_FORMAT",
	keyLogConsoleSeparator: "LOG_CONSOLE_SEPARATOR",
	keyHideSensitiveData:   "HIDE_SENSITIVE_DATA",
	keyProxyURL:            "PROXY_URL",
	keyProxyUsername:       "PROXY_USERNAME",
	keyProxyPassword:       "PROXY_PASSWORD",
	keyCustomTimeout:       "CUSTOM_TIMEOUT",
	keyFollowRedirects:     "FOLLOW_REDIRECTS",
	keyMaxRedirects:        "MAX_REDIRECTS",
}

// LoadConfigFromFile loads client configuration settings from an appsettings file.
// The format follows the file extension; files without one are read as JSON.
// Missing fields are set to their default values.
func LoadConfigFromFile(path string) (*ClientConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read configuration file %s: %w", path, err)
	}

	config, err := decodeConfig(v, ClientConfig{})
	if err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", path, err)
	}
	SetDefaultValuesClientConfig(config)

	return config, nil
}

// LoadConfigFromEnv overlays environment variables on config. Values of config are
// kept for every variable that is not set. A nil config starts from an empty one.
func LoadConfigFromEnv(config *ClientConfig) (*ClientConfig, error) {
	if config == nil {
		config = &ClientConfig{}
	}

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding environment variable %s: %w", env, err)
		}
	}

	loaded, err := decodeConfig(v, *config)
	if err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	SetDefaultValuesClientConfig(loaded)

	return loaded, nil
}

// decodeConfig reads every configuration key from v, falling back to the values of base.
func decodeConfig(v *viper.Viper, base ClientConfig) (*ClientConfig, error) {
	v.SetDefault(keyBaseURL, base.BaseURL)
	v.SetDefault(keyUserID, base.UserID)
	v.SetDefault(keyPassword, base.Password)
	v.SetDefault(keyLogLevel, base.LogLevel)
	v.SetDefault(keyLogOutputFormat, base.LogOutputFormat)
	v.SetDefault(keyLogConsoleSeparator, base.LogConsoleSeparator)
	v.SetDefault(keyHideSensitiveData, base.HideSensitiveData)
	v.SetDefault(keyProxyURL, base.ProxyURL)
	v.SetDefault(keyProxyUsername, base.ProxyUsername)
	v.SetDefault(keyProxyPassword, base.ProxyPassword)
	v.SetDefault(keyCustomTimeout, base.CustomTimeout.String())
	v.SetDefault(keyFollowRedirects, base.FollowRedirects)
	v.SetDefault(keyMaxRedirects, base.MaxRedirects)

	timeout, err := parseTimeout(v.GetString(keyCustomTimeout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keyCustomTimeout, err)
	}

	return &ClientConfig{
		BaseURL:             v.GetString(keyBaseURL),
		UserID:              v.GetString(keyUserID),
		Password:            v.GetString(keyPassword),
		LogLevel:            v.GetString(keyLogLevel),
		LogOutputFormat:     v.GetString(keyLogOutputFormat),
		LogConsoleSeparator: v.GetString(keyLogConsoleSeparator),
		HideSensitiveData:   v.GetBool(keyHideSensitiveData),
		ProxyURL:            v.GetString(keyProxyURL),
		ProxyUsername:       v.GetString(keyProxyUsername),
		ProxyPassword:       v.GetString(keyProxyPassword),
		CustomTimeout:       timeout,
		FollowRedirects:     v.GetBool(keyFollowRedirects),
		MaxRedirects:        v.GetInt(keyMaxRedirects),
	}, nil
}

// parseTimeout reads a Go duration such as "30s" or "1m30s". A bare number is a count of seconds.
func parseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	timeout, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("timeout %q is neither a duration nor a number of seconds", value)
	}
	return timeout, nil
}

// validateClientConfig checks the configuration BuildClient is about to use.
func validateClientConfig(config ClientConfig) error {
	if config.BaseURL == "" {
		return errors.New("no base url supplied, set APIContagem_Access.UrlBase")
	}

	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return fmt.Errorf("base url %q cannot be parsed: %w", config.BaseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("base url %q must be an absolute http or https url", config.BaseURL)
	}

	if logger.ParseLogLevelFromString(config.LogLevel) == logger.LogLevelNone {
		return fmt.Errorf("unknown log level: %q", config.LogLevel)
	}

	if config.LogOutputFormat != logger.LogOutputJSON && config.LogOutputFormat != logger.LogOutputConsole {
		return fmt.Errorf("log output format must be %q or %q, got %q", logger.LogOutputJSON, logger.LogOutputConsole, config.LogOutputFormat)
	}

	if config.CustomTimeout.Seconds() < 0 {
		return errors.New("timeout cannot be less than 0 seconds")
	}
	if config.CustomTimeout > 0 && config.CustomTimeout < time.Millisecond {
		return fmt.Errorf("timeout %s is below 1ms, durations need a unit such as 10s", config.CustomTimeout)
	}

	if config.FollowRedirects {
		if config.MaxRedirects < 1 {
			return errors.New("max redirects cannot be less than 1")
		}
	}

	return nil
}

// SetDefaultValuesClientConfig sets default values for the client configuration. Ensuring that all fields have a valid or minimum value.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	setDefaultString(&config.LogLevel, DefaultLogLevelString)
	setDefaultString(&config.LogOutputFormat, DefaultLogOutputFormatString)
	setDefaultString(&config.LogConsoleSeparator, DefaultLogConsoleSeparator)
	setDefaultDuration(&config.CustomTimeout, DefaultCustomTimeout)
	setDefaultInt(&config.MaxRedirects, DefaultMaxRedirects, 1)
}

func setDefaultString(field *string, defaultValue string) {
	if *field == "" {
		*field = defaultValue
	}
}

// setDefaultInt replaces values below minValue.
func setDefaultInt(field *int, defaultValue, minValue int) {
	if *field < minValue {
		*field = defaultValue
	}
}

func setDefaultDuration(field *time.Duration, defaultValue time.Duration) {
	if *field == 0 {
		*field = defaultValue
	}
}
