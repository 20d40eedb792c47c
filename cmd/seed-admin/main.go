package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "comlab/internal/errors"
	"comlab/internal/database"
	"comlab/internal/logger"
	"comlab/internal/models"
	"comlab/internal/services"
)

type seedOptions struct {
	studentID string
	firstName string
	lastName  string
	email     string
	contact   string
	course    string
	address   string
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:           "seed-admin",
		Short:         "Register the initial lab administrator",
		Long:          "Creates an admin-level lab user. Does nothing if the student ID is already registered.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := seed(opts); err != nil {
				logger.Get().Errorf("Seeding failed: %v", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.studentID, "student-id", "ADMIN001", "student ID of the admin")
	flags.StringVar(&opts.firstName, "first-name", "Admin", "first name")
	flags.StringVar(&opts.lastName, "last-name", "User", "last name")
	flags.StringVar(&opts.email, "email", "admin@comlab.com", "email address")
	flags.StringVar(&opts.contact, "contact", "N/A", "contact number")
	flags.StringVar(&opts.course, "course", "System Administrator", "course or role")
	flags.StringVar(&opts.address, "address", "N/A", "address")

	return cmd
}

func seed(opts *seedOptions) error {
	log := logger.Get()

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	userService := services.NewComputerUserService(dbManager.DB())
	user, err := userService.CreateUser(services.CreateUserInput{
		StudentID:     opts.studentID,
		FirstName:     opts.firstName,
		LastName:      opts.lastName,
		Email:         opts.email,
		ContactNumber: opts.contact,
		Course:        opts.course,
		Address:       opts.address,
		AccessLevel:   models.AccessLevelAdmin,
		Status:        models.UserStatusActive,
	})
	if apperrors.HasCode(err, apperrors.ErrDuplicateStudentID) {
		log.Warnf("User %s already exists, nothing to do", opts.studentID)
		return nil
	}
	if err != nil {
		return err
	}

	log.Infow("Admin user created", "student_id", user.StudentID, "name", user.FullName())
	return nil
}
