// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigureLogger sets the global log level and writes logs to out and,
// when set, to logFile.
func ConfigureLogger(level zerolog.Level, out io.Writer, logFile string) error {
	zerolog.SetGlobalLevel(level)
	writers := []io.Writer{zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02T15:04:05Z07:00"}}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return nil
}
