// Package config loads the service configuration from YAML.
//
// Every field has a default (see Default); a file only needs the keys it
// changes. Unknown keys are rejected so that typos surface at start-up.
//
// Loading runs in three steps:
//
//  1. Default() supplies every value;
//  2. the YAML document is decoded over it with KnownFields enabled (an empty
//     document keeps the defaults);
//  3. Validate checks server limits, the gin mode, the log level and format,
//     and plans a request built from the defaults alone.
//
// Every failure wraps ErrConfig.
package config
