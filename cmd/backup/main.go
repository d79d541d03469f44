package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"footballiq/internal/config"
	"footballiq/internal/database"
	"footballiq/internal/service"
)

func main() {
	_ = godotenv.Load()

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	exportNotify := exportCmd.String("notify", "", "Email address to send a backup report to")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	backupService := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(cfg, backupService, *exportOutput, *exportNotify)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput, *importClear)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(cfg *config.Config, backupService *service.BackupService, outputPath, notifyEmail string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Msg("Failed to create output directory")
		}
	}

	log.Info().Str("path", outputPath).Msg("Exporting database")
	data, err := backupService.Export(outputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Info().
		Int("users", len(data.Users)).
		Int("puzzles", len(data.Puzzles)).
		Int("attempts", len(data.Attempts)).
		Float64("size_mb", float64(fileInfo.Size())/1024/1024).
		Msg("Export complete")

	if notifyEmail != "" {
		sendReport(cfg, notifyEmail, outputPath, data)
	}
}

func sendReport(cfg *config.Config, toEmail, outputPath string, data *service.BackupData) {
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize email service")
		return
	}
	if !emailService.IsEnabled() {
		log.Warn().Msg("Email service disabled, skipping backup report")
		return
	}

	body := fmt.Sprintf(
		"Backup written to %s at %s.\n\nUsers: %d\nPuzzles: %d\nAttempts: %d\nFreeze wallets: %d\nAd unlocks: %d\n",
		outputPath, data.ExportedAt.Format(time.RFC3339),
		len(data.Users), len(data.Puzzles), len(data.Attempts), len(data.Wallets), len(data.AdUnlocks),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := emailService.SendBackupReport(ctx, toEmail, "Football IQ backup report", body); err != nil {
		log.Error().Err(err).Msg("Failed to send backup report")
		return
	}
	log.Info().Str("to", toEmail).Msg("Backup report sent")
}

func handleImport(backupService *service.BackupService, inputPath string, clearData bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatal().Str("path", inputPath).Msg("Input file does not exist")
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Info().Msg("Import cancelled")
			return
		}
	}

	log.Info().Str("path", inputPath).Msg("Importing database")
	data, err := backupService.Import(inputPath, clearData)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	log.Info().
		Int("users", len(data.Users)).
		Int("puzzles", len(data.Puzzles)).
		Int("attempts", len(data.Attempts)).
		Msg("Import complete")
}

func printUsage() {
	fmt.Println("Football IQ Database Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export database to JSON file")
	fmt.Println("  backup import [options]    Import database from JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println("  -notify <email>   Send a backup report to this address via SES")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./footballiq.db)")
	fmt.Println("  DB_URL           PostgreSQL or MySQL connection URL")
	fmt.Println("  AWS_REGION       AWS region for SES (default: eu-west-1)")
	fmt.Println("  SES_FROM_EMAIL   Sender address for backup reports")
}
