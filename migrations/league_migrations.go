package migrations

import "gorm.io/gorm"

func GetLeagueMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2024_01_04_000000_create_members_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS members (
						id BIGINT PRIMARY KEY,
						username VARCHAR(255) NOT NULL,
						skill_level INT DEFAULT 3,
						matches_played INT DEFAULT 0,
						wins INT DEFAULT 0,
						losses INT DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (id) REFERENCES users(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_members_deleted_at ON members(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_members_skill_level ON members(skill_level);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS members CASCADE").Error
			},
		},
		{
			Name: "2024_01_05_000000_create_seasons_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS seasons (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						start_date TIMESTAMP NULL,
						end_date TIMESTAMP NULL,
						active BOOLEAN DEFAULT true,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_seasons_deleted_at ON seasons(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_seasons_active ON seasons(active);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS season_players (
						id BIGSERIAL PRIMARY KEY,
						season_id BIGINT NOT NULL,
						member_id BIGINT NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE CASCADE,
						FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_season_member ON season_players(season_id, member_id);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS standings (
						id BIGSERIAL PRIMARY KEY,
						season_id BIGINT NOT NULL,
						member_id BIGINT NOT NULL,
						points DOUBLE PRECISION DEFAULT 0,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE CASCADE,
						FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_standing_season_member ON standings(season_id, member_id);
					CREATE INDEX IF NOT EXISTS idx_standings_points ON standings(points);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS standings CASCADE").Error; err != nil {
					return err
				}
				if err := db.Exec("DROP TABLE IF EXISTS season_players CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS seasons CASCADE").Error
			},
		},
		{
			Name: "2024_01_06_000000_create_matches_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						season_id BIGINT NOT NULL,
						week INT DEFAULT 0,
						player1_id BIGINT NOT NULL,
						player2_id BIGINT NOT NULL,
						status VARCHAR(20) DEFAULT 'planned',
						winner_id BIGINT NULL,
						player1_score INT NULL,
						player2_score INT NULL,
						player1_skill_level INT NULL,
						player2_skill_level INT NULL,
						player1_racks_needed INT NULL,
						player2_racks_needed INT NULL,
						player1_points DOUBLE PRECISION NULL,
						player2_points DOUBLE PRECISION NULL,
						completed_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE CASCADE,
						FOREIGN KEY (player1_id) REFERENCES members(id) ON DELETE CASCADE,
						FOREIGN KEY (player2_id) REFERENCES members(id) ON DELETE CASCADE,
						FOREIGN KEY (winner_id) REFERENCES members(id)
					);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status);
					CREATE INDEX IF NOT EXISTS idx_matches_season_id ON matches(season_id);
					CREATE INDEX IF NOT EXISTS idx_matches_player1_id ON matches(player1_id);
					CREATE INDEX IF NOT EXISTS idx_matches_player2_id ON matches(player2_id);
					CREATE INDEX IF NOT EXISTS idx_matches_completed_at ON matches(completed_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS matches CASCADE").Error
			},
		},
		{
			Name: "2024_01_07_000000_create_notifications_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS notifications (
						id VARCHAR(36) PRIMARY KEY,
						member_id BIGINT NOT NULL,
						season_id BIGINT NULL,
						type VARCHAR(50) NOT NULL,
						title VARCHAR(255) NOT NULL,
						body TEXT,
						read BOOLEAN DEFAULT false,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE,
						FOREIGN KEY (season_id) REFERENCES seasons(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_notifications_member_id ON notifications(member_id);
					CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
					CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS notifications CASCADE").Error
			},
		},
	}
}
