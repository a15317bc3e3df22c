package util

import (
	"regexp"
	"usdtstaking/internal/models"
)

var (
	solAddrPattern   = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
	bep20AddrPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	trxAddrPattern   = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
	tonAddrPattern   = regexp.MustCompile(`^UQ[0-9A-Za-z_-]{46,}$`)
)

// ValidWalletAddress checks a destination address against the format of
// its network. Addresses are inert strings here, no on-chain checks.
func ValidWalletAddress(network models.Network, addr string) bool {
	switch network {
	case models.NetworkSol:
		return solAddrPattern.MatchString(addr)
	case models.NetworkBep20:
		return bep20AddrPattern.MatchString(addr)
	case models.NetworkTrx:
		return trxAddrPattern.MatchString(addr)
	case models.NetworkTon:
		return tonAddrPattern.MatchString(addr)
	}
	return false
}
