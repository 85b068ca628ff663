package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/db"
	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/rbac"
	"github.com/orgpulse/orgpulse/pkg/validation"
)

// accountCreateAdminCmd represents the account create-admin command
var accountCreateAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a super admin user",
	Long: `Create a super admin user.

A super admin belongs to no company and can manage every tenant. If no
password is provided a random one is generated and printed to STDOUT.

Example:
  pulsectl account create-admin --email admin@example.com
  pulsectl account create-admin --email admin@example.com --name "Site Admin"`,
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")

		generated, err := createAdmin(email, name, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created super admin '%s'\n", email)
		if generated != "" {
			fmt.Printf("Generated password: %s\n", generated)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountCreateAdminCmd)
	accountCreateAdminCmd.Flags().StringP("email", "e", "", "Admin email (required)")
	accountCreateAdminCmd.Flags().StringP("name", "n", "Administrator", "Admin display name")
	accountCreateAdminCmd.Flags().StringP("password", "w", "", "Admin password (generated if omitted)")
	_ = accountCreateAdminCmd.MarkFlagRequired("email")
}

func createAdmin(email, name, password string) (generated string, err error) {
	if !validation.ValidEmail(email) {
		return "", fmt.Errorf("invalid email %q", email)
	}

	if password == "" {
		raw := make([]byte, 18)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		password = base64.URLEncoding.EncodeToString(raw)
		generated = password
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	var count int64
	if err := database.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", fmt.Errorf("user '%s' already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.Get().BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	admin := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         string(rbac.RoleSuperAdmin),
		PasswordHash: hash,
	}

	if err := database.Create(&admin).Error; err != nil {
		return "", fmt.Errorf("failed to store admin: %w", err)
	}

	return generated, nil
}
