package utils

import (
	"fmt"
	"strings"
)

// FormatAddress shortens a wallet address for display: 0x1234...abcd.
func FormatAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return fmt.Sprintf("%s...%s", address[:6], address[len(address)-4:])
}

// NormalizeAddress lowercases an address so row-level ownership matches are
// case-insensitive. Wallet SDKs are not consistent about checksum casing.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// AvatarURL returns a deterministic identicon for addresses or names that
// have no avatar of their own.
func AvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/identicon/svg?seed=" + seed
}
