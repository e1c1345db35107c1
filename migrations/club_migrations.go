package migrations

import "gorm.io/gorm"

func GetClubMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2024_01_08_000000_create_news_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS news (
						id BIGSERIAL PRIMARY KEY,
						title VARCHAR(255) NOT NULL,
						slug VARCHAR(255) UNIQUE NOT NULL,
						body TEXT,
						author_id BIGINT NOT NULL,
						published BOOLEAN DEFAULT false,
						published_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_news_deleted_at ON news(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_news_published ON news(published);
					CREATE INDEX IF NOT EXISTS idx_news_author_id ON news(author_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS news CASCADE").Error
			},
		},
		{
			Name: "2024_01_09_000000_create_events_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS events (
						id BIGSERIAL PRIMARY KEY,
						title VARCHAR(255) NOT NULL,
						description TEXT,
						location VARCHAR(255),
						starts_at TIMESTAMP NOT NULL,
						ends_at TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_events_deleted_at ON events(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events(starts_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS events CASCADE").Error
			},
		},
	}
}
