package admin

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opsdesk/opsdesk/internal/domain/user"
	vo "github.com/opsdesk/opsdesk/internal/domain/user/valueobjects"
	"github.com/opsdesk/opsdesk/internal/infrastructure/auth"
	"github.com/opsdesk/opsdesk/internal/infrastructure/config"
	"github.com/opsdesk/opsdesk/internal/infrastructure/database"
	"github.com/opsdesk/opsdesk/internal/infrastructure/repository"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

var (
	env      string
	email    string
	fullName string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long:  `Create an administrator account interactively. The password is read from the terminal and never echoed.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&email, "email", "", "Admin email address (required)")
	cmd.Flags().StringVar(&fullName, "name", "", "Admin display name (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	password, err := readPassword()
	if err != nil {
		return err
	}
	if len(password) < cfg.Auth.Password.MinLength {
		return fmt.Errorf("password must be at least %d characters", cfg.Auth.Password.MinLength)
	}

	emailVO, err := vo.NewEmail(email)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	nameVO, err := vo.NewName(fullName)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := user.NewUser(emailVO, nameVO, hash, authorization.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to build admin user: %w", err)
	}

	userRepo := repository.NewUserRepository(database.Get())
	if err := userRepo.Save(context.Background(), admin); err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}

	fmt.Printf("Admin account created: %s (id=%d)\n", email, admin.ID())
	return nil
}

// readPassword prompts twice on the controlling terminal so typos do not
// end up as the stored credential.
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(first), nil
}
