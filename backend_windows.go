//go:build windows && !mock

package main

import (
	"log/slog"

	"github.com/wifui/wifui/wifi"
	"github.com/wifui/wifui/wifi/wlanapi"
)

func GetBackend(logger *slog.Logger) (wifi.Backend, error) {
	return wlanapi.New(logger)
}
