package router

import (
	"github.com/gin-gonic/gin"

	"artvote/internal/handlers"
	"artvote/internal/middleware"
	"artvote/internal/services"
)

// RegisterRoutes wires the API onto the engine. Reads are public; mutations
// require a connected wallet.
func RegisterRoutes(r *gin.Engine, store services.Storage) {
	comments := services.NewCommentStore(store)
	votes := services.NewVoteLedger(store)
	leaderboard := services.NewLeaderboardService(store)
	curation := services.NewCurationService(store, services.GetSuperRareService(), services.GetStakingService())
	feed := services.GetArtworkFeed()

	artworkHandler := handlers.NewArtworkHandler(store, comments, votes, curation, leaderboard)
	voteHandler := handlers.NewVoteHandler(store, votes, leaderboard, feed)
	commentHandler := handlers.NewCommentHandler(comments, feed)

	api := r.Group("/api")

	// Public routes
	api.GET("/artworks", artworkHandler.List)               // artwork catalog
	api.GET("/artworks/:id", artworkHandler.Detail)         // artwork with comments and tallies
	api.GET("/artworks/:id/comments", commentHandler.List)  // comment overlay data
	api.GET("/leaderboard", artworkHandler.Leaderboard)     // Wilson-ranked top artworks

	// Wallet-required routes
	authorized := api.Group("/")
	authorized.Use(middleware.WalletRequired())
	{
		authorized.GET("/eligibility", artworkHandler.Eligibility)                     // may this wallet curate
		authorized.POST("/artworks", artworkHandler.Curate)                            // curate a new artwork
		authorized.POST("/artworks/:id/vote", voteHandler.Cast)                        // vote click (toggle/flip)
		authorized.POST("/artworks/:id/comments", commentHandler.Create)               // place a comment bubble
		authorized.DELETE("/artworks/:id/comments/:cid", commentHandler.Delete)        // soft-delete own comment
		authorized.PUT("/artworks/:id/comments/:cid/position", commentHandler.UpdatePosition) // drag own bubble
	}
}
