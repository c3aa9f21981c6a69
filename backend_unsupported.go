//go:build !windows && !linux && !mock

package main

import (
	"errors"
	"log/slog"

	"github.com/wifui/wifui/wifi"
)

func GetBackend(logger *slog.Logger) (wifi.Backend, error) {
	return nil, errors.New("no wireless backend for this platform (build with -tags mock to try the UI)")
}
