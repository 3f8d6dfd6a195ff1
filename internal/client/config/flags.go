package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/userdir/internal/flagx"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// handled here are taken from os.Args (see flagx.FilterArgs). Panics on a
// parse error or an unknown log level.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-o", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path of the user records file")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database")
	fs.StringVar(&cfg.OrdersDir, "o", cfg.OrdersDir, "directory for order documents")
	fields := flagx.StringList(cfg.OrderFields)
	fs.Var(&fields, "f", "comma-separated order form fields")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OrderFields = []string(fields)
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		panic(err)
	}
}
