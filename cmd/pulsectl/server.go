package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/db"
	"github.com/orgpulse/orgpulse/pkg/server"
	"github.com/orgpulse/orgpulse/pkg/server/endpoints"
	gormstore "github.com/orgpulse/orgpulse/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the OrgPulse application server",
	Long: `Run the OrgPulse application server.

Requires the environment variables ORGPULSE_SESSION_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		sessionKeyB64, ok := os.LookupEnv("ORGPULSE_SESSION_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "ORGPULSE_SESSION_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		sessionKey, err := base64.StdEncoding.DecodeString(sessionKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad ORGPULSE_SESSION_KEY:", err)
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to initialize logger:", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, cfg, logger, sessionKey, host, port)

		s.Users = gormstore.NewUsersStore(database)
		s.Companies = gormstore.NewCompaniesStore(database)
		s.Departments = gormstore.NewDepartmentsStore(database)
		s.Demographics = gormstore.NewDemographicsStore(database)
		s.Surveys = gormstore.NewSurveysStore(database)
		s.Responses = gormstore.NewResponsesStore(database)
		s.Microclimates = gormstore.NewMicroclimatesStore(database)
		s.Dashboard = gormstore.NewDashboardStore(database)
		s.Health = gormstore.NewHealthStore(database)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
