package handlers

import (
	"net/http"
	"strconv"

	"cueu-api/auth/middleware"
	authModels "cueu-api/auth/models"
	"cueu-api/league/models"
	"cueu-api/league/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MemberHandler struct {
	memberService *services.MemberService
	db            *gorm.DB
}

func NewMemberHandler(memberService *services.MemberService, db *gorm.DB) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		db:            db,
	}
}

func (h *MemberHandler) isAdmin(c *gin.Context) bool {
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

// GetAllMembers retrieves members with pagination
// @Summary Get all members
// @Description Get club members with pagination and ordering
// @Tags members
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 20, max: 100)" default(20)
// @Param order_by query string false "Order by field" Enums(created_at,username,skill_level,wins)
// @Param direction query string false "Order direction" Enums(ASC,DESC)
// @Success 200 {object} models.PaginatedMembersResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /members [get]
func (h *MemberHandler) GetAllMembers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	orderBy := c.DefaultQuery("order_by", "created_at")
	direction := c.DefaultQuery("direction", "DESC")

	result, err := h.memberService.GetAllMembers(orderBy, direction, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMember retrieves a single member
// @Summary Get a member
// @Description Get a club member by ID
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} models.Member
// @Failure 404 {object} map[string]string
// @Router /members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	member, err := h.memberService.GetMemberByID(uint(memberID))
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// GetMemberMatches retrieves a member's matches
// @Summary Get member matches
// @Description Get a member's matches with pagination and a wins/losses filter
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Param filter query string false "Filter matches" Enums(all,wins,losses)
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /members/{id}/matches [get]
func (h *MemberHandler) GetMemberMatches(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	filter := c.DefaultQuery("filter", "all")

	result, err := h.memberService.GetMemberMatches(uint(memberID), filter, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateSkillLevel changes a member's skill level
// @Summary Update skill level
// @Description Update a member's APA skill level (self or admin). Completed matches keep their snapshot.
// @Tags members
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param skill body models.UpdateSkillLevelRequest true "New skill level"
// @Success 200 {object} models.Member
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /members/{id}/skill-level [put]
func (h *MemberHandler) UpdateSkillLevel(c *gin.Context) {
	memberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var req models.UpdateSkillLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	// Members adjust their own level; admins adjust anyone's.
	if uint(memberID) != userID && !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot update another member's skill level"})
		return
	}

	member, err := h.memberService.UpdateSkillLevel(uint(memberID), req.SkillLevel)
	if err != nil {
		lifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}
