//go:build mock

package main

import (
	"log/slog"

	"github.com/wifui/wifui/wifi"
	"github.com/wifui/wifui/wifi/mock"
)

func GetBackend(logger *slog.Logger) (wifi.Backend, error) {
	return mock.New(), nil
}
