// Package main provides the command-line interface for the chatbot engine.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vibesync/chatbot-engine/internal/catalog"
	"github.com/vibesync/chatbot-engine/internal/chatbot"
	"github.com/vibesync/chatbot-engine/internal/config"
	"github.com/vibesync/chatbot-engine/internal/observability"
	"github.com/vibesync/chatbot-engine/internal/textgen"
)

var (
	cfgFile    string
	outputJSON bool
	verbose    bool
	noColor    bool

	cfg    *config.Config
	logger *observability.Logger
	ui     *UI
)

var rootCmd = &cobra.Command{
	Use:   "chatbot-cli",
	Short: "Music chatbot engine CLI",
	Long: `Command-line interface for the VibeSync chatbot engine.

Ask catalog questions from the terminal, seed a demo catalog,
and apply database migrations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := cfg.Observability.LogLevel
		if verbose {
			level = "debug"
		} else if !outputJSON {
			// Keep terminal output clean unless asked for detail.
			level = "error"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       level,
			Format:      cfg.Observability.LogFormat,
			ServiceName: "chatbot-cli",
		})

		ui = NewUI(outputJSON, noColor)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newAskCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the chatbot a question",
		Long:  `Ask the chatbot a question about the music catalog. The answer is printed as markdown.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			responder := newResponder(db)

			stop := ui.Spinner("Thinking...")
			start := time.Now()
			result := responder.Answer(ctx, prompt)
			elapsed := time.Since(start)
			stop()

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"prompt":    prompt,
					"answer":    result.Answer,
					"language":  string(result.Language),
					"stage":     result.Stage,
					"latencyMs": elapsed.Milliseconds(),
				})
			}

			fmt.Println(result.Answer)
			fmt.Println()
			ui.KeyValue("stage", result.Stage)
			ui.KeyValue("language", result.Language)
			ui.KeyValue("latency", elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "answer timeout")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var migrationsDir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load a demo catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := applyMigrations(ctx, db, cfg.Database.Driver, migrationsDir); err != nil {
				return err
			}
			ui.Success("Schema ready")

			rows := demoCatalog()
			bar := newProgressBar(len(rows), "Seeding catalog")
			for _, row := range rows {
				if _, err := db.ExecContext(ctx, row.query, row.args...); err != nil {
					return fmt.Errorf("seed %s: %w", row.label, err)
				}
				_ = bar.Add(1)
			}
			fmt.Println()

			ui.Success("Seeded %d catalog rows into %s", len(rows), cfg.Database.Driver)
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsDir, "migrations", "db/migrations", "migrations directory")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var migrationsDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := applyMigrations(ctx, db, cfg.Database.Driver, migrationsDir); err != nil {
				return err
			}

			ui.Success("Migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsDir, "migrations", "db/migrations", "migrations directory")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog snapshot statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			builder := catalog.NewBuilder(catalog.NewSQLSource(db), cfg.Chatbot.SiteBaseURL, logger)
			snap := builder.Build(ctx)

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"artists": len(snap.Artists),
					"songs":   len(snap.Songs),
					"albums":  len(snap.Albums),
				})
			}

			ui.Section("Catalog")
			ui.KeyValue("artists", len(snap.Artists))
			ui.KeyValue("songs", len(snap.Songs))
			ui.KeyValue("albums", len(snap.Albums))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("chatbot-cli v0.1.0")
		},
	}
}

func newResponder(db *sql.DB) *chatbot.Responder {
	builder := catalog.NewBuilder(catalog.NewSQLSource(db), cfg.Chatbot.SiteBaseURL, logger)

	var generator textgen.Generator
	if cfg.GeneratorEnabled() {
		client, err := textgen.NewClient(textgen.Config{
			APIKey:  cfg.Generator.APIKey,
			Model:   cfg.Generator.Model,
			BaseURL: cfg.Generator.BaseURL,
			Timeout: cfg.Generator.Timeout,
		})
		if err != nil {
			ui.Warning("Generator unavailable: %v", err)
		} else {
			generator = client
		}
	}

	return chatbot.New(builder, cfg.Chatbot, logger, chatbot.Options{
		Generator: generator,
	})
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	driver := "sqlite3"
	if cfg.Database.Driver == "postgres" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// applyMigrations runs every .sql file for the configured driver in
// lexical order. SQLite variants carry a _sqlite suffix.
func applyMigrations(ctx context.Context, db *sql.DB, driver, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		isSQLite := strings.HasSuffix(name, "_sqlite.sql")
		if driver == "postgres" && isSQLite {
			continue
		}
		if driver != "postgres" && !isSQLite {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return fmt.Errorf("no migrations for driver %q in %s", driver, dir)
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		ui.Info("Applied %s", name)
	}
	return nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	if outputJSON || !IsTerminal() {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

type seedRow struct {
	label string
	query string
	args  []interface{}
}

// demoCatalog returns a small Vietnamese-leaning catalog that exercises
// every answer stage: profiles, genre groups, albums, and lyrics.
func demoCatalog() []seedRow {
	artistSonTung := uuid.NewString()
	artistDenVau := uuid.NewString()
	artistMono := uuid.NewString()
	albumSkyTour := uuid.NewString()

	insertArtist := `INSERT INTO artists (id, name, bio, genres, followers, image) VALUES ($1, $2, $3, $4, $5, $6)`
	insertSong := `INSERT INTO songs (id, title, artist, artist_id, album, release_year, duration, genres, lyrics, audio_url, cover_art) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	insertAlbum := `INSERT INTO albums (id, title, artist_id, release_year, cover_image) VALUES ($1, $2, $3, $4, $5)`

	return []seedRow{
		{"artist Sơn Tùng M-TP", insertArtist, []interface{}{
			artistSonTung, "Sơn Tùng M-TP",
			"Sơn Tùng M-TP là ca sĩ, nhạc sĩ người Việt Nam, được mệnh danh là Hoàng tử V-Pop.",
			`["v-pop","ballad"]`, 1200000, "https://cdn.vibesync.local/artists/son-tung.jpg",
		}},
		{"artist Đen Vâu", insertArtist, []interface{}{
			artistDenVau, "Đen Vâu",
			"Đen Vâu là rapper người Việt Nam nổi tiếng với phong cách kể chuyện mộc mạc.",
			`["rap","hip hop"]`, 900000, "https://cdn.vibesync.local/artists/den-vau.jpg",
		}},
		{"artist MONO", insertArtist, []interface{}{
			artistMono, "MONO",
			"MONO là ca sĩ trẻ theo đuổi dòng nhạc pop hiện đại.",
			`["pop"]`, 300000, "",
		}},
		{"album Sky Tour", insertAlbum, []interface{}{
			albumSkyTour, "Sky Tour", artistSonTung, "2020",
			"https://cdn.vibesync.local/albums/sky-tour.jpg",
		}},
		{"song Chạy Ngay Đi", insertSong, []interface{}{
			uuid.NewString(), "Chạy Ngay Đi", "Sơn Tùng M-TP", artistSonTung, "Sky Tour",
			"2018", "4:08", `["v-pop","edm"]`,
			"Từ bỏ thói quen anh gọi tên em\n[Chorus]\nChạy ngay đi trước khi mọi điều dần tồi tệ hơn",
			"https://cdn.vibesync.local/audio/chay-ngay-di.mp3",
			"https://cdn.vibesync.local/covers/chay-ngay-di.jpg",
		}},
		{"song Nơi Này Có Anh", insertSong, []interface{}{
			uuid.NewString(), "Nơi Này Có Anh", "Sơn Tùng M-TP", artistSonTung, "Sky Tour",
			"2017", "4:25", `["v-pop","ballad"]`,
			"Em là ai từ đâu bước đến nơi đây dịu dàng chân phương\n[Verse]\nNơi này có anh",
			"https://cdn.vibesync.local/audio/noi-nay-co-anh.mp3",
			"https://cdn.vibesync.local/covers/noi-nay-co-anh.jpg",
		}},
		{"song Lối Nhỏ", insertSong, []interface{}{
			uuid.NewString(), "Lối Nhỏ", "Đen Vâu", artistDenVau, "",
			"2019", "4:32", `["rap"]`,
			"Em vẫn đi theo lối nhỏ\n[Hook]\nLối nhỏ chẳng mấy ai đi",
			"https://cdn.vibesync.local/audio/loi-nho.mp3",
			"https://cdn.vibesync.local/covers/loi-nho.jpg",
		}},
		{"song Waiting For You", insertSong, []interface{}{
			uuid.NewString(), "Waiting For You", "MONO", artistMono, "",
			"2022", "4:12", `["pop","love"]`,
			"Anh chờ em nơi ấy\n[Chorus]\nWaiting for you",
			"https://cdn.vibesync.local/audio/waiting-for-you.mp3",
			"",
		}},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
