package config

import (
	"flag"
	"os"
	"time"

	"github.com/TheCasperSolangi/arc-fun-front/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   base URL of the record API
//	-s string   base URL of the asset storage API
//	-u string   base URL of the auth API
//	-d string   path to the local sqlite database
//	-t int      request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-s", "-u", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RecordAPIBaseURL, "r", cfg.RecordAPIBaseURL, "base URL of the record API")
	fs.StringVar(&cfg.StorageAPIBaseURL, "s", cfg.StorageAPIBaseURL, "base URL of the asset storage API")
	fs.StringVar(&cfg.AuthAPIBaseURL, "u", cfg.AuthAPIBaseURL, "base URL of the auth API")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path to the local sqlite database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
