package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"classifieds/pkg/config"
	"classifieds/pkg/logger"
	app "classifieds/services/listing/internal/app"
	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/usecase"
)

type categorySeed struct {
	name     string
	children []string
}

var categoryTree = []categorySeed{
	{name: "Vehicles", children: []string{"Cars", "Bikes", "Parts"}},
	{name: "Electronics", children: []string{"Phones", "Computers"}},
	{name: "Home & Garden", children: []string{"Furniture", "Garden"}},
	{name: "Jobs"},
}

type listingSeed struct {
	title       string
	description string
	category    string
	condition   entity.Condition
	price       *float64
	priceType   entity.PriceType
	city        string
	country     string
	lat, lng    float64
	seller      string
	featured    bool
}

func price(v float64) *float64 { return &v }

var demoListings = []listingSeed{
	{"Gravel bike, 56cm frame", "Shimano GRX, ridden one season.", "Bikes", entity.ConditionUsed, price(950), entity.PriceNegotiable, "Berlin", "DE", 52.5200, 13.4050, "seed-user-1", true},
	{"City bike with basket", "Seven gears, new tyres.", "Bikes", entity.ConditionUsed, price(180), entity.PriceFixed, "Potsdam", "DE", 52.3906, 13.0645, "seed-user-2", false},
	{"Winter tyres 205/55 R16", "Set of four, 6mm tread.", "Parts", entity.ConditionUsed, price(220), entity.PriceFixed, "Hamburg", "DE", 53.5511, 9.9937, "seed-user-3", false},
	{"Refurbished laptop 14\"", "16GB RAM, 512GB SSD, battery replaced.", "Computers", entity.ConditionRefurbished, price(640), entity.PriceFixed, "Munich", "DE", 48.1351, 11.5820, "seed-user-1", false},
	{"Oak dining table", "Seats six. Pickup only.", "Furniture", entity.ConditionUsed, nil, entity.PriceNegotiable, "Berlin", "DE", 52.5000, 13.3600, "seed-user-2", false},
	{"Phone, sealed in box", "Never opened, receipt included.", "Phones", entity.ConditionNew, price(799), entity.PriceFixed, "Cologne", "DE", 50.9375, 6.9603, "seed-user-3", true},
	{"Garden hose reel", "Free to whoever picks it up.", "Garden", entity.ConditionUsed, price(0), entity.PriceFree, "Leipzig", "DE", 51.3397, 12.3731, "seed-user-1", false},
}

func main() {
	upload := flag.Bool("upload", false, "download demo photos and store them in S3 instead of linking them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	infra, err := app.NewInfra(cfg, log)
	if err != nil {
		log.Error("Failed to initialize infrastructure: %v", err)
		panic(err)
	}

	uc := app.NewUseCases(cfg, log, infra)

	var httpClient *http.Client
	if *upload && infra.Media != nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := seedDatabase(ctx, uc, httpClient, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

// seedDatabase is safe to rerun: existing categories are reused and listings
// are only created when the catalog is empty.
func seedDatabase(ctx context.Context, uc *app.UseCases, httpClient *http.Client, log *logger.Logger) error {
	categoryIDs, err := seedCategories(ctx, uc.Categories, log)
	if err != nil {
		return err
	}

	existing, err := uc.Search.Count(ctx, entity.SearchFilter{})
	if err != nil {
		return fmt.Errorf("failed to count listings: %w", err)
	}
	if existing > 0 {
		log.Info("%d published listings already present, skipping demo listings", existing)
		return nil
	}

	for i, demo := range demoListings {
		if err := createListing(ctx, uc, categoryIDs, demo, i, httpClient, log); err != nil {
			log.Error("Failed to create listing %q: %v", demo.title, err)
			continue
		}
	}
	return nil
}

func seedCategories(ctx context.Context, categories usecase.CategoryUseCase, log *logger.Logger) (map[string]uint, error) {
	flat, err := categories.GetFlat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	ids := make(map[string]uint, len(flat))
	for _, c := range flat {
		ids[c.Name] = c.ID
	}

	ensure := func(name string, parentID *uint, order int) (uint, error) {
		if id, ok := ids[name]; ok {
			log.Info("Category %s already exists, skipping", name)
			return id, nil
		}
		created, err := categories.Create(ctx, name, parentID, order)
		if err != nil {
			return 0, fmt.Errorf("failed to create category %s: %w", name, err)
		}
		ids[name] = created.ID
		log.Info("Created category: %s", name)
		return created.ID, nil
	}

	for i, root := range categoryTree {
		rootID, err := ensure(root.name, nil, i)
		if err != nil {
			return nil, err
		}
		for j, child := range root.children {
			parent := rootID
			if _, err := ensure(child, &parent, j); err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}

func createListing(ctx context.Context, uc *app.UseCases, categoryIDs map[string]uint, demo listingSeed, index int, httpClient *http.Client, log *logger.Logger) error {
	subcategoryID, ok := categoryIDs[demo.category]
	if !ok {
		return fmt.Errorf("unknown category %s", demo.category)
	}
	categoryID := subcategoryID
	for _, root := range categoryTree {
		for _, child := range root.children {
			if child == demo.category {
				categoryID = categoryIDs[root.name]
			}
		}
	}

	lat, lng := demo.lat, demo.lng
	listing, err := uc.Listings.Create(ctx, entity.ListingInput{
		Title:         demo.title,
		Description:   demo.description,
		CategoryID:    categoryID,
		SubcategoryID: &subcategoryID,
		Condition:     demo.condition,
		Price:         demo.price,
		PriceType:     demo.priceType,
		Currency:      "EUR",
		City:          demo.city,
		Country:       demo.country,
		Latitude:      &lat,
		Longitude:     &lng,
		UserID:        demo.seller,
	})
	if err != nil {
		return err
	}

	if _, err := uc.Lifecycle.Approve(ctx, listing.ID); err != nil {
		return fmt.Errorf("failed to approve: %w", err)
	}
	if demo.featured {
		until := time.Now().UTC().Add(14 * 24 * time.Hour)
		if _, err := uc.Lifecycle.SetFeatured(ctx, listing.ID, true, &until); err != nil {
			log.Warn("Failed to feature listing %d: %v", listing.ID, err)
		}
	}

	photoURL := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", listing.Slug)
	if err := attachPhoto(ctx, uc.Images, listing.ID, photoURL, index, httpClient); err != nil {
		log.Warn("Failed to attach photo to listing %d: %v", listing.ID, err)
	}

	log.Info("Created listing: %s (%s) by %s", listing.Title, listing.Slug, demo.seller)
	return nil
}

func attachPhoto(ctx context.Context, images usecase.ImageUseCase, listingID uint, photoURL string, index int, httpClient *http.Client) error {
	if httpClient == nil {
		_, err := images.AddImage(ctx, listingID, photoURL, 0, true)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("photo source returned status %d", resp.StatusCode)
	}

	_, err = images.UploadImage(ctx, listingID, usecase.ImageUpload{
		Filename:    fmt.Sprintf("seed_%d.jpg", index),
		ContentType: "image/jpeg",
		Body:        resp.Body,
		IsPrimary:   true,
	})
	return err
}
