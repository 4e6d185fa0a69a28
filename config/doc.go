// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml (or ./config/config.yml) and validated
// using struct tags. A .env file, when present, is loaded into the environment
// first; MTA_API_KEY and SUBWAY_MAPPER_PORT override the file values.
package config
