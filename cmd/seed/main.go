package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sneakhead/sneakhead-backend/internal/accounts"
	"github.com/sneakhead/sneakhead-backend/internal/catalog"
	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	"github.com/sneakhead/sneakhead-backend/pkg/config"
	"github.com/sneakhead/sneakhead-backend/pkg/logger"
	"github.com/sneakhead/sneakhead-backend/pkg/security"
)

var seedProducts = []catalog.AddProductInput{
	{
		Title:       "Air Jordan 1 Retro High OG",
		Description: "The one that started it all, in classic colour blocking.",
		Image:       "/images/aj1-retro-high.png",
		Price:       "180",
	},
	{
		Title:       "Nike Dunk Low Panda",
		Description: "Black and white staple for everyday rotation.",
		Image:       "/images/dunk-low-panda.png",
		Price:       "120",
	},
	{
		Title:       "New Balance 550 White Green",
		Description: "Retro basketball silhouette with leather upper.",
		Image:       "/images/nb-550-green.png",
		Price:       "130",
	},
	{
		Title:       "Adidas Samba OG",
		Description: "Low-profile classic with gum sole.",
		Image:       "/images/samba-og.png",
		Price:       "100",
	},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	adminUser := flag.String("admin-user", "admin", "admin username to create")
	adminPassword := flag.String("admin-password", "", "admin password (required)")
	skipCatalog := flag.Bool("skip-catalog", false, "do not write the seed catalog")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if *adminPassword == "" {
		fmt.Fprintln(os.Stderr, "missing -admin-password")
		os.Exit(1)
	}

	store, err := docstore.New(cfg.Store.DataDir)
	requireResource(ctx, logg, "document store", err)
	locks := lockmanager.New()

	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"data_dir": cfg.Store.DataDir,
	})

	if !*skipCatalog {
		catalogSvc, err := catalog.NewService(catalog.ServiceParams{Store: store, Locks: locks})
		requireResource(ctx, logg, "catalog service", err)

		existing, err := catalogSvc.List(ctx)
		requireResource(ctx, logg, "catalog read", err)

		if len(existing) > 0 {
			logg.Info(ctx, "catalog already populated, skipping")
		} else {
			for _, input := range seedProducts {
				if _, err := catalogSvc.AddProduct(ctx, input); err != nil {
					logg.Error(ctx, "failed to seed product", err)
					os.Exit(1)
				}
			}
			logg.Info(logg.WithField(ctx, "products", len(seedProducts)), "seed catalog written")
		}
	}

	if err := seedAdmin(ctx, store, locks, cfg.Password, *adminUser, *adminPassword); err != nil {
		logg.Error(ctx, "failed to seed admin user", err)
		os.Exit(1)
	}
	logg.Info(logg.WithUsername(ctx, *adminUser), "admin user ready")
}

// seedAdmin writes the admin record directly so the admin flag can be set.
// Register never grants it.
func seedAdmin(ctx context.Context, store *docstore.Store, locks *lockmanager.Manager, passwordCfg config.PasswordConfig, username, password string) error {
	unlock := locks.Lock(docstore.CollectionUsers)
	defer unlock()

	users := accounts.Collection{}
	if err := store.Load(docstore.CollectionUsers, &users); err != nil {
		return err
	}

	if existing, ok := users[username]; ok && existing.IsAdmin {
		return nil
	}

	hashed, err := security.HashPassword(password, passwordCfg)
	if err != nil {
		return err
	}

	users[username] = accounts.User{
		Username: username,
		Password: accounts.Credential(hashed),
		IsAdmin:  true,
	}
	return store.Save(docstore.CollectionUsers, users)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
