package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/db"
	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/rbac"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo company for local development",
	Long: `Seed the database with a demo company, departments, a company admin
and a draft survey. Intended for local development only.

Example:
  pulsectl seed
  pulsectl seed --company "Demo Corp" --admin-email admin@demo.test --password changeme`,
	Run: func(cmd *cobra.Command, args []string) {
		companyName, _ := cmd.Flags().GetString("company")
		email, _ := cmd.Flags().GetString("admin-email")
		password, _ := cmd.Flags().GetString("password")

		if err := runSeed(companyName, email, password); err != nil {
			fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Seeded company '%s' with admin '%s'\n", companyName, email)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringP("company", "c", "Demo Corp", "Company name")
	seedCmd.Flags().StringP("admin-email", "e", "admin@demo.test", "Company admin email")
	seedCmd.Flags().StringP("password", "w", "password123", "Company admin password")
}

func runSeed(companyName, email, password string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	var count int64
	if err := database.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("user '%s' already exists; database looks seeded", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.Get().BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		company := model.Company{
			ID:       uuid.NewString(),
			Name:     companyName,
			Industry: "Technology",
			Size:     "51-200",
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		for _, name := range []string{"Engineering", "People", "Sales"} {
			dept := model.Department{
				ID:        uuid.NewString(),
				CompanyID: company.ID,
				Name:      name,
			}
			if err := tx.Create(&dept).Error; err != nil {
				return err
			}
		}

		admin := model.User{
			ID:           uuid.NewString(),
			CompanyID:    &company.ID,
			Email:        email,
			Name:         "Demo Admin",
			Role:         string(rbac.RoleCompanyAdmin),
			PasswordHash: hash,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		demo := model.Survey{
			ID:        uuid.NewString(),
			CompanyID: company.ID,
			CreatedBy: admin.ID,
			Title:     "Quarterly climate check",
			Type:      "general_climate",
			Status:    model.SurveyStatusDraft,
		}
		if err := tx.Create(&demo).Error; err != nil {
			return err
		}

		questions := []model.SurveyQuestion{
			{Text: "How satisfied are you with your role?", QuestionType: "rating", Required: true},
			{Text: "How likely are you to recommend working here?", QuestionType: "scale"},
			{Text: "Do you feel heard by leadership?", QuestionType: "binary",
				CommentEnabled: true, CommentMinLen: 10, CommentMaxLen: 500},
			{Text: "Anything else you'd like to share?", QuestionType: "text"},
		}
		for i := range questions {
			questions[i].ID = uuid.NewString()
			questions[i].SurveyID = demo.ID
			questions[i].OrderIndex = i + 1
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
