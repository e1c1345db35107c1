package services

import (
	"errors"

	"cueu-api/league/models"
	"cueu-api/league/utils"

	"gorm.io/gorm"
)

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{
		db: db,
	}
}

func (s *MemberService) GetMemberByID(id uint) (*models.Member, error) {
	var member models.Member

	result := s.db.First(&member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, result.Error
	}

	return &member, nil
}

// CreateMember creates the league profile backing an auth user. New members
// start at skill level 3 until a skill level is assigned.
func (s *MemberService) CreateMember(userID uint, username string) (*models.Member, error) {
	member := &models.Member{
		ID:            userID,
		Username:      username,
		SkillLevel:    3,
		MatchesPlayed: 0,
		Wins:          0,
		Losses:        0,
	}

	result := s.db.Create(member)
	if result.Error != nil {
		return nil, result.Error
	}

	return member, nil
}

// UpdateSkillLevel changes a member's live skill level. Completed matches
// keep the skill level snapshot taken at completion time.
func (s *MemberService) UpdateSkillLevel(memberID uint, skillLevel int) (*models.Member, error) {
	if !utils.ValidSkillLevel(skillLevel) {
		return nil, utils.ErrInvalidSkillLevel
	}

	var member models.Member
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	member.SkillLevel = skillLevel
	if err := s.db.Save(&member).Error; err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *MemberService) GetMemberMatches(memberID uint, filter string, page int, pageSize int) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	baseQuery := s.db.Model(&models.Match{}).Where("player1_id = ? OR player2_id = ?", memberID, memberID)

	switch filter {
	case "wins":
		baseQuery = baseQuery.Where("winner_id = ?", memberID)
	case "losses":
		baseQuery = baseQuery.Where("status = ? AND winner_id IS NOT NULL AND winner_id != ?", models.MatchStatusCompleted, memberID)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	query := baseQuery.Order("created_at DESC").
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Offset(offset).
		Limit(pageSize)

	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *MemberService) GetAllMembers(orderBy string, direction string, page int, pageSize int) (*models.PaginatedMembersResponse, error) {
	var members []models.Member
	var total int64

	allowedOrderBy := map[string]bool{
		"created_at":  true,
		"username":    true,
		"skill_level": true,
		"wins":        true,
	}

	if !allowedOrderBy[orderBy] {
		orderBy = "created_at"
	}

	if direction != "ASC" && direction != "DESC" {
		direction = "DESC"
	}

	if err := s.db.Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	orderClause := orderBy + " " + direction

	if err := s.db.Order(orderClause).
		Offset(offset).
		Limit(pageSize).
		Find(&members).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedMembersResponse{
		Data:       members,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
