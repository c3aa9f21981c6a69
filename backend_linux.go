//go:build linux && !mock

package main

import (
	"log/slog"

	"github.com/wifui/wifui/wifi"
	"github.com/wifui/wifui/wifi/networkmanager"
)

func GetBackend(logger *slog.Logger) (wifi.Backend, error) {
	return networkmanager.New(logger)
}
