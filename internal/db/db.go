package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

// Connect veritabanına bağlantı açar ve pool'u ayarlar
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("veritabanı açılırken hata: %w", err)
	}

	// HTTP trafiği + mutabakat poller'ı aynı pool'u paylaşır
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Bağlantıyı test et
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("veritabanına ping atılamadı: %w", err)
	}

	log.Info().Msg("✅ PostgreSQL veritabanına başarıyla bağlandı")
	return db, nil
}
