package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sports-lore-chatbot/backend/internal/models"
	"sports-lore-chatbot/backend/internal/news"
)

// OnboardingController serves default team preferences by location
type OnboardingController struct {
	newsClient *news.Client
}

func NewOnboardingController(newsClient *news.Client) *OnboardingController {
	return &OnboardingController{newsClient: newsClient}
}

// RegisterRoutes registers the routes for the onboarding controller
func (c *OnboardingController) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/onboarding")
	{
		group.GET("/default-teams/:location", c.GetDefaultTeams)
		group.POST("/preferences", c.SavePreferences)
		group.GET("/available-locations", c.GetAvailableLocations)
	}
}

// GetDefaultTeams returns the default team preferences for a location
func (c *OnboardingController) GetDefaultTeams(ctx *gin.Context) {
	location := ctx.Param("location")

	prefs := c.newsClient.DefaultPreferences(location)
	if len(prefs.Teams) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": "No default teams configured for location: " + location,
		})
		return
	}

	ctx.JSON(http.StatusOK, prefs)
}

// SavePreferences validates and echoes the submitted preferences.
// Preferences are request-scoped, so nothing is persisted server-side.
func (c *OnboardingController) SavePreferences(ctx *gin.Context) {
	var prefs models.UserPreferences
	if err := ctx.BindJSON(&prefs); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences format"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "Preferences saved successfully",
		"preferences": prefs,
	})
}

// GetAvailableLocations lists locations with configured team coverage
func (c *OnboardingController) GetAvailableLocations(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, []gin.H{
		{
			"name":  "Seattle",
			"teams": []string{"Seattle Mariners (MLB)", "Seattle Seahawks (NFL)"},
		},
	})
}
