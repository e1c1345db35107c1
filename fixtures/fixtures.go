package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	authModels "cueu-api/auth/models"
	authUtils "cueu-api/auth/utils"
	clubModels "cueu-api/club/models"
	clubServices "cueu-api/club/services"
	"cueu-api/league/cache"
	"cueu-api/league/models"
	"cueu-api/league/services"
	"cueu-api/league/utils"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Fixtures struct {
	db            *gorm.DB
	memberService *services.MemberService
	seasonService *services.SeasonService
	matchService  *services.MatchService
	newsService   *clubServices.NewsService
	eventService  *clubServices.EventService
}

func NewFixtures(db *gorm.DB) *Fixtures {
	standingsCache := cache.NewStandingsCache(nil)
	memberService := services.NewMemberService(db)
	seasonService := services.NewSeasonService(db, standingsCache)
	notificationService := services.NewNotificationService(db)
	matchService := services.NewMatchService(db, seasonService, notificationService, standingsCache)

	return &Fixtures{
		db:            db,
		memberService: memberService,
		seasonService: seasonService,
		matchService:  matchService,
		newsService:   clubServices.NewNewsService(db),
		eventService:  clubServices.NewEventService(db),
	}
}

// GenerateTestData creates users, members, a season with roster and matches,
// plus some club content
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	members, err := f.generateUsersAndMembers()
	if err != nil {
		return fmt.Errorf("failed to generate users and members: %w", err)
	}

	season, err := f.generateSeason(members)
	if err != nil {
		return fmt.Errorf("failed to generate season: %w", err)
	}

	matchCount, err := f.generateMatches(season, members)
	if err != nil {
		return fmt.Errorf("failed to generate matches: %w", err)
	}

	if err := f.generateClubContent(members); err != nil {
		return fmt.Errorf("failed to generate club content: %w", err)
	}

	log.Println("Fixtures generated successfully!")
	log.Printf("Created %d members, season %q with %d matches", len(members), season.Name, matchCount)
	return nil
}

func (f *Fixtures) generateUsersAndMembers() ([]*models.Member, error) {
	usernames := []string{
		"alexandre", "marie", "julien", "sophie", "thomas",
		"camille", "nicolas", "laura", "antoine", "emma",
	}

	var members []*models.Member

	for i, username := range usernames {
		hashedPassword, err := authUtils.HashPassword("password123")
		if err != nil {
			return nil, err
		}

		user := authModels.User{
			Email:    fmt.Sprintf("%s@cueu.club", username),
			Username: username,
			Slug:     slug.Make(username),
			Password: hashedPassword,
			Enabled:  true,
			Roles:    authModels.GetDefaultRoles(),
		}

		// First account doubles as admin and editor
		if i == 0 {
			user.AddRole(authModels.RoleEditor)
			user.AddRole(authModels.RoleAdmin)
		}

		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}

		member, err := f.memberService.CreateMember(user.ID, user.Username)
		if err != nil {
			return nil, err
		}

		// Spread skill levels across the full range
		skillLevel := models.SkillLevelMin + rand.Intn(models.SkillLevelMax-models.SkillLevelMin+1)
		if skillLevel != member.SkillLevel {
			member, err = f.memberService.UpdateSkillLevel(member.ID, skillLevel)
			if err != nil {
				return nil, err
			}
		}

		members = append(members, member)
	}

	log.Printf("Created %d users and members", len(members))
	return members, nil
}

func (f *Fixtures) generateSeason(members []*models.Member) (*models.Season, error) {
	start := time.Now().AddDate(0, -2, 0)
	season, err := f.seasonService.CreateSeason(models.CreateSeasonRequest{
		Name:      fmt.Sprintf("%d Spring Session", time.Now().Year()),
		StartDate: start,
		EndDate:   start.AddDate(0, 4, 0),
	})
	if err != nil {
		return nil, err
	}

	for _, member := range members {
		if err := f.seasonService.AddToRoster(season.ID, member.ID); err != nil {
			return nil, err
		}
	}

	log.Printf("Created season %q with %d roster spots", season.Name, len(members))
	return season, nil
}

func (f *Fixtures) generateMatches(season *models.Season, members []*models.Member) (int, error) {
	created := 0

	for week := 1; week <= 5; week++ {
		// Shuffle the roster and pair neighbours
		shuffled := make([]*models.Member, len(members))
		copy(shuffled, members)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for i := 0; i+1 < len(shuffled); i += 2 {
			p1, p2 := shuffled[i], shuffled[i+1]

			match, err := f.matchService.CreateMatch(models.CreateMatchRequest{
				SeasonID:  season.ID,
				Week:      week,
				Player1ID: p1.ID,
				Player2ID: p2.ID,
			})
			if err != nil {
				return created, err
			}
			created++

			// Leave the last week unplayed
			if week == 5 {
				continue
			}

			if err := f.completeWithRandomScore(match, p1, p2); err != nil {
				return created, err
			}
		}

		// Odd roster: give the leftover player a bye slot
		if len(shuffled)%2 == 1 {
			leftover := shuffled[len(shuffled)-1]
			bye, err := f.matchService.CreateByeMatch(season.ID, week, leftover.ID)
			if err != nil {
				return created, err
			}
			created++

			if week < 5 {
				if _, err := f.matchService.AcceptByeMatch(bye.ID); err != nil {
					return created, err
				}
			}
		}
	}

	log.Printf("Created %d matches", created)
	return created, nil
}

// completeWithRandomScore plays out a match with a handicap-consistent score
func (f *Fixtures) completeWithRandomScore(match *models.Match, p1, p2 *models.Member) error {
	targets, err := utils.RacksNeeded(p1.SkillLevel, p2.SkillLevel)
	if err != nil {
		return err
	}

	var score models.CompleteMatchRequest
	var winnerID uint

	if rand.Intn(2) == 0 {
		winnerID = p1.ID
		score.Player1Score = targets.Player1
		score.Player2Score = rand.Intn(targets.Player2)
	} else {
		winnerID = p2.ID
		score.Player2Score = targets.Player2
		score.Player1Score = rand.Intn(targets.Player1)
	}

	_, err = f.matchService.CompleteMatch(match.ID, winnerID, score)
	return err
}

func (f *Fixtures) generateClubContent(members []*models.Member) error {
	adminID := members[0].ID

	articles := []clubModels.CreateNewsRequest{
		{
			Title:     "Spring session standings are live",
			Body:      "The standings page now updates after every reported match. Check where you sit before playoffs.",
			Published: true,
		},
		{
			Title:     "Table maintenance weekend",
			Body:      "Tables 3 and 4 get new cloth this weekend. Expect limited availability on Saturday morning.",
			Published: true,
		},
		{
			Title:     "Draft: summer session planning",
			Body:      "Notes for the next committee meeting.",
			Published: false,
		},
	}

	for _, req := range articles {
		if _, err := f.newsService.Create(adminID, req); err != nil {
			return err
		}
	}

	eventStart := time.Now().AddDate(0, 0, 14)
	eventEnd := eventStart.Add(5 * time.Hour)
	events := []clubModels.CreateEventRequest{
		{
			Title:       "Monthly 8-ball tournament",
			Description: "Open to all members. Handicapped brackets, entry includes table time.",
			Location:    "Main hall",
			StartsAt:    eventStart,
			EndsAt:      &eventEnd,
		},
		{
			Title:       "Beginner clinic",
			Description: "Fundamentals clinic run by our SL6 and SL7 players.",
			Location:    "Practice room",
			StartsAt:    time.Now().AddDate(0, 0, 7),
		},
	}

	for _, req := range events {
		if _, err := f.eventService.Create(req); err != nil {
			return err
		}
	}

	log.Printf("Created %d news articles and %d events", len(articles), len(events))
	return nil
}

// ClearAllData removes all fixture data, respecting foreign key order
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	tables := []string{
		"notifications",
		"matches",
		"standings",
		"season_players",
		"seasons",
		"news",
		"events",
		"members",
		"refresh_tokens",
		"users",
	}

	for _, table := range tables {
		if err := f.db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	log.Println("All fixture data cleared")
	return nil
}
