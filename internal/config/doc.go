// Package config loads mapper settings from a YAML file, applies
// VMAPPER_* environment overrides and validates the result.
//
// Example file:
//
//	version: "1"
//	mapper:
//	  reveal_private_fields: false
//	  ignore_unknown_keys: false
//	  require_readable_path: true
//	  fail_on_empty: false
//	  format: json
//	log:
//	  level: info
package config
