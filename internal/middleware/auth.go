package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artvote/internal/utils"
)

const (
	WalletKey       = "wallet_address"
	WalletNameKey   = "wallet_name"
	WalletAvatarKey = "wallet_avatar"
)

// LoadWallet reads the wallet identity the connect SDK attaches to each
// request. The address is advisory, client-trusted identity; the storage
// layer's match-on-address clauses are what actually enforce ownership.
func LoadWallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		if addr := c.GetHeader("X-Wallet-Address"); addr != "" {
			c.Set(WalletKey, utils.NormalizeAddress(addr))
			c.Set(WalletNameKey, c.GetHeader("X-Wallet-Name"))
			c.Set(WalletAvatarKey, c.GetHeader("X-Wallet-Avatar"))
		}
		c.Next()
	}
}

// WalletRequired rejects mutating requests that carry no wallet address.
func WalletRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(WalletKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "wallet not connected"})
			return
		}
		c.Next()
	}
}

// Wallet returns the request's wallet address, empty when not connected.
func Wallet(c *gin.Context) string {
	if addr, exists := c.Get(WalletKey); exists {
		return addr.(string)
	}
	return ""
}

// WalletProfile returns the optional display name and avatar.
func WalletProfile(c *gin.Context) (name, avatar string) {
	return c.GetString(WalletNameKey), c.GetString(WalletAvatarKey)
}
