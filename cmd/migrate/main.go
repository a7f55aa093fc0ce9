package main

import (
	"flag"
	stdlog "log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/config"
	"github.com/onerilhan/go-store-api/internal/db"
	"github.com/onerilhan/go-store-api/internal/logger"
)

// Migration CLI: up | down | version | force <v>
func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", "migrations", "migration dosyalarının dizini")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)

	command := flag.Arg(0)
	if command == "" {
		log.Fatal().Msg("Kullanım: migrate [-path dizin] <up|down|version|force> [versiyon]")
	}

	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}
	defer database.Close()

	m, err := db.NewMigrator(database, migrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Migrator oluşturulamadı")
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("❌ Migration'lar uygulanamadı")
		}
		log.Info().Msg("✅ Migration'lar uygulandı")

	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatal().Err(err).Msg("❌ Migration geri alınamadı")
		}
		log.Info().Msg("✅ Son migration geri alındı")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Versiyon okunamadı")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration versiyonu")

	case "force":
		versionArg := flag.Arg(1)
		version, err := strconv.Atoi(versionArg)
		if err != nil {
			log.Fatal().Str("version", versionArg).Msg("❌ Geçersiz versiyon")
		}
		if err := m.Force(version); err != nil {
			log.Fatal().Err(err).Msg("❌ Versiyon zorlanamadı")
		}
		log.Info().Int("version", version).Msg("✅ Versiyon zorlandı")

	default:
		log.Fatal().Str("command", command).Msg("Bilinmeyen komut. Geçerli komutlar: up, down, version, force")
	}
}
