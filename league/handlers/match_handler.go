package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cueu-api/auth/middleware"
	authModels "cueu-api/auth/models"
	"cueu-api/league/models"
	"cueu-api/league/services"
	"cueu-api/league/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MatchHandler struct {
	matchService *services.MatchService
	db           *gorm.DB
}

func NewMatchHandler(matchService *services.MatchService, db *gorm.DB) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		db:           db,
	}
}

// lifecycleError maps a lifecycle service error onto an HTTP response.
func lifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrSeasonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotAParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotOnRoster),
		errors.Is(err, utils.ErrInvalidSkillLevel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// isAdmin reports whether the authenticated user carries the admin role.
func (h *MatchHandler) isAdmin(c *gin.Context) bool {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		return false
	}

	var user authModels.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return false
	}
	return user.HasRole(authModels.RoleAdmin)
}

// GetRecentMatches retrieves the N most recent matches
// @Summary Get recent matches
// @Description Get the N most recent matches ordered by creation date (newest first)
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}

	// Cap the limit to prevent excessive queries
	if limit > 100 {
		limit = 100
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatches retrieves matches with pagination and filters
// @Summary Get matches with pagination and filters
// @Description Get matches with optional filters for season, week, player and status
// @Tags matches
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param season_id query int false "Filter by season ID"
// @Param week query int false "Filter by week number"
// @Param player_id query int false "Filter by player ID (matches where player is player1 or player2)"
// @Param status query string false "Filter by match status" Enums(planned,bye,completed)
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("per_page", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	filters := services.MatchFilters{
		Page:    page,
		PerPage: perPage,
	}

	if seasonIDStr := c.Query("season_id"); seasonIDStr != "" {
		seasonID, err := strconv.ParseUint(seasonIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
			return
		}
		seasonIDUint := uint(seasonID)
		filters.SeasonID = &seasonIDUint
	}

	if weekStr := c.Query("week"); weekStr != "" {
		week, err := strconv.Atoi(weekStr)
		if err != nil || week < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week parameter"})
			return
		}
		filters.Week = &week
	}

	if playerIDStr := c.Query("player_id"); playerIDStr != "" {
		playerID, err := strconv.ParseUint(playerIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player_id parameter"})
			return
		}
		playerIDUint := uint(playerID)
		filters.PlayerID = &playerIDUint
	}

	if status := c.Query("status"); status != "" {
		if status != models.MatchStatusPlanned && status != models.MatchStatusBye && status != models.MatchStatusCompleted {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: planned, bye, completed"})
			return
		}
		filters.Status = &status
	}

	result, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMatch retrieves a single match
// @Summary Get a match
// @Description Get a match by ID with players and result
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	match, err := h.matchService.GetMatchByID(uint(matchID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// CreateMatch schedules a planned match
// @Summary Schedule a match
// @Description Schedule a planned match between two roster members (admin only)
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.CreateMatch(req)
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// CreateByeMatch schedules a bye slot
// @Summary Schedule a bye
// @Description Schedule a self-paired bye slot for a roster member (admin only)
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param season_id query int true "Season ID"
// @Param week query int true "Week number"
// @Param member_id query int true "Member ID"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/bye [post]
func (h *MatchHandler) CreateByeMatch(c *gin.Context) {
	seasonID, err := strconv.ParseUint(c.Query("season_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_id parameter"})
		return
	}
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil || week < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week parameter"})
		return
	}
	memberID, err := strconv.ParseUint(c.Query("member_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member_id parameter"})
		return
	}

	match, err := h.matchService.CreateByeMatch(uint(seasonID), week, uint(memberID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// CompleteMatch submits the final score of a match
// @Summary Complete a match
// @Description Submit the final score for a planned match. The score is checked against both players' rack targets; the first violated rule is returned as a reason code.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param score body models.CompleteMatchRequest true "Submitted score"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/complete [post]
func (h *MatchHandler) CompleteMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	var req models.CompleteMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	match, err := h.matchService.GetMatchByID(uint(matchID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	// Only a participant (or an admin) may report the result.
	if !match.HasPlayer(userID) && !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a participant can report this match"})
		return
	}

	// Score validation happens here, at the caller boundary. The lifecycle
	// operation itself trusts the winner and score it is given.
	targets, err := h.matchService.GetRackTargets(uint(matchID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	validation := utils.ValidateScore(targets, req.Player1Score, req.Player2Score)
	if !validation.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid score",
			"reason": validation.Reason,
			"player": validation.Player,
		})
		return
	}

	winnerID := match.Player1ID
	if validation.Winner == 2 {
		winnerID = match.Player2ID
	}

	completed, err := h.matchService.CompleteMatch(uint(matchID), winnerID, req)
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, completed)
}

// ForfeitMatch completes a match as a forfeit
// @Summary Forfeit a match
// @Description Complete a planned match as a forfeit by one of its players
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param forfeit body models.ForfeitMatchRequest true "Forfeiting player"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/forfeit [post]
func (h *MatchHandler) ForfeitMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	var req models.ForfeitMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	// A player declares their own forfeit; admins may declare it for them.
	if req.ForfeitingPlayerID != userID && !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the forfeiting player can declare a forfeit"})
		return
	}

	match, err := h.matchService.ForfeitMatch(uint(matchID), req.ForfeitingPlayerID)
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// AcceptByeMatch accepts a bye slot
// @Summary Accept a bye
// @Description Accept a bye slot, awarding the sole player 10 season points
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/bye [post]
func (h *MatchHandler) AcceptByeMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	match, err := h.matchService.GetMatchByID(uint(matchID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	if match.Player1ID != userID && !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the bye player can accept this bye"})
		return
	}

	completed, err := h.matchService.AcceptByeMatch(uint(matchID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, completed)
}

// GetRackTargets previews the rack targets of a match
// @Summary Get rack targets
// @Description Get the current rack targets for a match from both players' live skill levels
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} utils.RackTargets
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/targets [get]
func (h *MatchHandler) GetRackTargets(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	targets, err := h.matchService.GetRackTargets(uint(matchID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, targets)
}
