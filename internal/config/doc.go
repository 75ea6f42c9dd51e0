// Package config provides configuration management for trackfetch.
//
// Settings are resolved from three layers, later layers winning:
// built-in defaults, an optional trackfetch_config.yaml (working
// directory or /etc/trackfetch/), and TRACKFETCH_* environment
// variables.
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(settings.OutputRoot)
//
// Durations may be written as Go duration strings ("45s", "1m30s").
package config
