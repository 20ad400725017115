package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/mardecortez-api/internal/application/auth"
	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/infrastructure/persistence"
	"github.com/jhoicas/mardecortez-api/pkg/config"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

// defaultCategories categorías iniciales del catálogo.
var defaultCategories = []dto.CreateCategoryRequest{
	{Name: "Alimentos", Slug: "alimentos"},
	{Name: "Electrónica", Slug: "electronica"},
	{Name: "Ferretería", Slug: "ferreteria"},
	{Name: "Bebidas", Slug: "bebidas"},
	{Name: "Otros", Slug: "otros"},
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Carga datos iniciales en la base configurada (DB_*)",
		SilenceUsage: true,
	}
	root.AddCommand(newAdminCmd(), newCategoriesCmd())
	return root
}

func newAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Crea el administrador si el email no existe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email y --password son obligatorios")
			}
			return withRepos(cmd.Context(), func(ctx context.Context, cfg *config.Config, repos *persistence.Repositories, log *logger.Logger) error {
				uc := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
					Secret:     cfg.JWT.Secret,
					ExpMinutes: cfg.JWT.Expiration,
					Issuer:     cfg.JWT.Issuer,
				})
				created, err := uc.EnsureAdmin(ctx, email, password, name)
				if err != nil {
					return err
				}
				if created {
					log.Info().Str("email", email).Msg("administrador creado")
				} else {
					log.Info().Str("email", email).Msg("el administrador ya existía")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "correo del administrador")
	cmd.Flags().StringVar(&password, "password", "", "contraseña")
	cmd.Flags().StringVar(&name, "name", "Administrador", "nombre a mostrar")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Crea las categorías por defecto que falten",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepos(cmd.Context(), func(ctx context.Context, _ *config.Config, repos *persistence.Repositories, log *logger.Logger) error {
				uc := usecase.NewCategoryUseCase(repos.Categories, repos.Products)
				for _, in := range defaultCategories {
					_, err := uc.Create(ctx, "", in)
					switch {
					case errors.Is(err, domain.ErrDuplicate):
						log.Debug().Str("slug", in.Slug).Msg("categoría existente")
					case err != nil:
						return fmt.Errorf("categoría %s: %w", in.Slug, err)
					default:
						log.Info().Str("slug", in.Slug).Msg("categoría creada")
					}
				}
				return nil
			})
		},
	}
}

func withRepos(ctx context.Context, fn func(context.Context, *config.Config, *persistence.Repositories, *logger.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	repos, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer repos.Close()
	return fn(ctx, cfg, repos, log)
}
