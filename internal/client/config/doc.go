// Package config loads runtime configuration for the userdir shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   path of the user records file
//	-d string   path of the SQLite database
//	-o string   directory for order documents
//	-f string   comma-separated order form fields
//	-l string   log level
//
// # File schema
//
//	store_path: users.json
//	database_path: userdir.db
//	orders_dir: orders
//	order_fields: [customer, product, quantity, address]
//	log_level: info
//
// Keys left out of the file keep their default. Unreadable files and bad
// values panic at startup.
package config
