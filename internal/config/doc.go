// Package config provides configuration parsing for the modalhost CLI.
//
// The configuration is stored in modalhost.yaml (or modalhost.yml /
// modalhost.json) in the working directory or one of its parents.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	host:
//	  suspense: true
//	  fallback: "Loading..."
//	server:
//	  host: localhost
//	  port: 7070
//	  inspector: true
//	  metrics: true
//	  metricsPath: /metrics
//	metrics:
//	  namespace: modalhost
//	logging:
//	  level: info
//	  format: text
//	render:
//	  pretty: false
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
