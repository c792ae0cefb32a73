package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"

	"onthego/internal/application"
	"onthego/internal/config"
	"onthego/internal/domain/model"
	"onthego/internal/domain/repository"
	"onthego/internal/domain/service"
	"onthego/internal/handler"
	"onthego/internal/infrastructure/calendar"
	"onthego/internal/infrastructure/maps"
	"onthego/internal/infrastructure/places"
	"onthego/internal/infrastructure/store"
	"onthego/internal/share"
	"onthego/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	app := &cli.App{
		Name:  "onthego",
		Usage: "travel dining assistant backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API server",
				Action: runServe,
			},
			{
				Name:      "decode-share",
				Usage:     "decode a share token and print its payload",
				ArgsUsage: "<token>",
				Action:    runDecodeShare,
			},
			{
				Name:   "demo-seed",
				Usage:  "seed the local store with the demo trips and default plan",
				Action: runDemoSeed,
			},
		},
		// Running with no subcommand serves.
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServe(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	kv, err := store.NewSQLiteStore(filepath.Join(cfg.DataDir, "onthego.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	demo := places.NewDemoProvider()
	var placeProvider repository.PlaceSearchProvider
	var primaryRouter repository.RoutingProvider
	if cfg.GoogleAPIKey != "" && !cfg.DemoMode {
		placeProvider = places.NewGooglePlacesProvider(cfg.GoogleAPIKey)
		primaryRouter = maps.NewGoogleRoutesProvider(cfg.GoogleAPIKey)
	} else {
		log.Printf("running on demo place data (api key set: %t, demo mode: %t)", cfg.GoogleAPIKey != "", cfg.DemoMode)
	}

	resolver := service.NewRouteTimeResolver(primaryRouter, maps.NewOSRMProvider(cfg.OSRMBaseURL))
	scorer := service.NewDefaultScorer()

	userState := application.NewUserStateService(kv)
	plans := application.NewPlanStore(kv)
	trips := application.NewTripsService(kv)

	searchUseCase := usecase.NewRestaurantSearchUseCase(
		placeProvider, demo, scorer, userState, plans,
		cfg.SearchRadiusMeters, cfg.SearchLimit,
	)
	shareUseCase := usecase.NewShareUseCase(userState, searchUseCase)

	engine := gin.Default()
	handler.RegisterRoutes(engine, handler.Handlers{
		Restaurants: handler.NewRestaurantHandler(searchUseCase),
		RouteTimes:  handler.NewRouteTimesHandler(resolver),
		Plan:        handler.NewPlanHandler(plans),
		UserState:   handler.NewUserStateHandler(userState),
		Share:       handler.NewShareHandler(shareUseCase),
		Trips:       handler.NewTripsHandler(trips, searchUseCase),
		Calendar:    handler.NewCalendarHandler(calendar.NewExporter(), plans, searchUseCase),
	})

	corsOptions := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsOptions.AllowedOrigins = cfg.AllowedOrigins
	}

	fmt.Printf("onthego server starting on %s...\n", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, cors.New(corsOptions).Handler(engine))
}

func runDemoSeed(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	kv, err := store.NewSQLiteStore(filepath.Join(cfg.DataDir, "onthego.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	trips := application.NewTripsService(kv)
	history, err := trips.History()
	if err != nil {
		return fmt.Errorf("seed trip history: %w", err)
	}
	upcoming, err := trips.Upcoming()
	if err != nil {
		return fmt.Errorf("seed upcoming trips: %w", err)
	}
	// An empty patch persists the defaulted plan.
	plan, err := application.NewPlanStore(kv).Set(model.PlanPatch{})
	if err != nil {
		return fmt.Errorf("seed dining plan: %w", err)
	}

	fmt.Printf("✅ seeded %d past trips, %d upcoming trips\n", len(history), len(upcoming))
	fmt.Printf("✅ dining plan: %s %s, party of %d\n", plan.Date, plan.Time, plan.PartySize)
	return nil
}

func runDecodeShare(c *cli.Context) error {
	token := c.Args().First()
	if token == "" {
		return fmt.Errorf("usage: onthego decode-share <token>")
	}
	payload, err := share.Decode(token)
	if err != nil {
		return err
	}
	fmt.Printf("version:   %d\n", payload.V)
	fmt.Printf("createdAt: %d\n", payload.CreatedAt)
	fmt.Printf("center:    %.5f,%.5f (%s)\n", payload.Center.Latitude, payload.Center.Longitude, payload.Center.Label)
	if payload.Preset != "" {
		fmt.Printf("preset:    %s\n", payload.Preset)
	}
	fmt.Printf("items:     %d\n", len(payload.Items))
	for _, it := range payload.Items {
		if it.Note != "" {
			fmt.Printf("  - %s (%s)\n", it.ID, it.Note)
		} else {
			fmt.Printf("  - %s\n", it.ID)
		}
	}
	return nil
}
