package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger is the process-wide structured logger every subcommand hands to
// credstore.New. Console output, timestamped, with no level filter of its
// own — boot-scan
// skip warnings (credstore's only routine diagnostic output) show up here.
var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}).With().Timestamp().Logger()
