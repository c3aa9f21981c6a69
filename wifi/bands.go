package wifi

// ChannelForFrequency derives the channel number from a center frequency in
// kHz. Frequencies outside the 2.4, 5 and 6 GHz bands map to channel 0.
func ChannelForFrequency(khz uint32) uint32 {
	switch {
	case khz >= 2412000 && khz <= 2484000:
		if khz == 2484000 {
			return 14 // channel 14 sits off the 5 MHz grid
		}
		return (khz - 2407000) / 5000
	case khz >= 5000000 && khz <= 5900000:
		return (khz - 5000000) / 5000
	case khz >= 5925000 && khz <= 7125000:
		return (khz - 5950000) / 5000
	}
	return 0
}

// Band names the frequency band for display, or "" when unknown.
func Band(khz uint32) string {
	switch {
	case khz >= 2412000 && khz <= 2484000:
		return "2.4 GHz"
	case khz >= 5000000 && khz <= 5900000:
		return "5 GHz"
	case khz >= 5925000 && khz <= 7125000:
		return "6 GHz"
	}
	return ""
}
