package handlers

import (
	"net/http"
	"strconv"

	"cueu-api/league/models"
	"cueu-api/league/services"

	"github.com/gin-gonic/gin"
)

type SeasonHandler struct {
	seasonService *services.SeasonService
}

func NewSeasonHandler(seasonService *services.SeasonService) *SeasonHandler {
	return &SeasonHandler{
		seasonService: seasonService,
	}
}

// GetSeasons retrieves seasons
// @Summary Get seasons
// @Description Get all seasons, optionally only active ones
// @Tags seasons
// @Produce json
// @Param active query bool false "Only active seasons"
// @Success 200 {array} models.Season
// @Failure 500 {object} map[string]string
// @Router /seasons [get]
func (h *SeasonHandler) GetSeasons(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	seasons, err := h.seasonService.GetSeasons(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve seasons"})
		return
	}

	c.JSON(http.StatusOK, seasons)
}

// GetSeason retrieves a single season with its roster
// @Summary Get a season
// @Description Get a season by ID including its roster
// @Tags seasons
// @Produce json
// @Param id path int true "Season ID"
// @Success 200 {object} models.Season
// @Failure 404 {object} map[string]string
// @Router /seasons/{id} [get]
func (h *SeasonHandler) GetSeason(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season ID"})
		return
	}

	season, err := h.seasonService.GetSeasonByID(uint(seasonID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, season)
}

// CreateSeason creates a season
// @Summary Create a season
// @Description Create a new league season (admin only)
// @Tags seasons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param season body models.CreateSeasonRequest true "Season data"
// @Success 201 {object} models.Season
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /seasons [post]
func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	var req models.CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	season, err := h.seasonService.CreateSeason(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create season"})
		return
	}

	c.JSON(http.StatusCreated, season)
}

// UpdateSeason updates a season
// @Summary Update a season
// @Description Update a season's name or active flag (admin only)
// @Tags seasons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Season ID"
// @Param season body models.UpdateSeasonRequest true "Fields to update"
// @Success 200 {object} models.Season
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /seasons/{id} [patch]
func (h *SeasonHandler) UpdateSeason(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season ID"})
		return
	}

	var req models.UpdateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	season, err := h.seasonService.UpdateSeason(uint(seasonID), req)
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, season)
}

// AddToRoster adds a member to the season roster
// @Summary Add to roster
// @Description Add a member to the season roster (admin only)
// @Tags seasons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Season ID"
// @Param member body models.RosterRequest true "Member to add"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /seasons/{id}/roster [post]
func (h *SeasonHandler) AddToRoster(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season ID"})
		return
	}

	var req models.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.seasonService.AddToRoster(uint(seasonID), req.MemberID); err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added to roster"})
}

// RemoveFromRoster removes a member from the season roster
// @Summary Remove from roster
// @Description Remove a member from the season roster (admin only)
// @Tags seasons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Season ID"
// @Param memberId path int true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /seasons/{id}/roster/{memberId} [delete]
func (h *SeasonHandler) RemoveFromRoster(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season ID"})
		return
	}

	memberID, err := strconv.ParseUint(c.Param("memberId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	if err := h.seasonService.RemoveFromRoster(uint(seasonID), uint(memberID)); err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed from roster"})
}

// GetStandings retrieves season standings
// @Summary Get standings
// @Description Get the ranked standings table of a season, ordered by points
// @Tags seasons
// @Produce json
// @Param id path int true "Season ID"
// @Success 200 {array} models.StandingEntry
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /seasons/{id}/standings [get]
func (h *SeasonHandler) GetStandings(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season ID"})
		return
	}

	standings, err := h.seasonService.GetStandings(uint(seasonID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve standings"})
		return
	}

	c.JSON(http.StatusOK, standings)
}
