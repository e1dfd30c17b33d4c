package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	database "github.com/nepaltrails/trip-planner/app/db"
	"github.com/nepaltrails/trip-planner/config"
)

// seedAttraction is one curated catalog row. Ratings and review counts are
// fixed so repeated seeds are idempotent.
type seedAttraction struct {
	ID          int
	Name        string
	Category    string
	Region      string
	Rating      float64
	NumReviews  int
	AvgCostUSD  float64
	Duration    int
	Difficulty  string
	BestSeason  string
	Altitude    int
	Description string
}

var catalog = []seedAttraction{
	{1, "Mount Everest Base Camp Trek", "Trekking", "Everest Region", 4.8, 2847, 1350, 12, "Hard", "Spring", 5364, "The classic trek to the foot of the world's highest mountain."},
	{2, "Annapurna Circuit", "Trekking", "Annapurna Region", 4.7, 2310, 1200, 14, "Moderate-Hard", "Autumn", 5416, "A full circuit of the Annapurna massif over the Thorong La pass."},
	{3, "Langtang Trek", "Trekking", "Langtang Region", 4.5, 980, 950, 8, "Moderate", "Autumn", 3870, "Valley trek through Tamang villages close to Kathmandu."},
	{4, "Manaslu Circuit", "Trekking", "Manaslu Region", 4.6, 640, 1350, 18, "Hard", "Spring", 5106, "Remote circuit around the world's eighth highest peak."},
	{5, "Upper Mustang Trek", "Trekking", "Mustang Region", 4.6, 520, 1200, 14, "Moderate-Hard", "Autumn", 3840, "Restricted-area trek into the walled kingdom of Lo Manthang."},
	{6, "Gokyo Lakes Trek", "Trekking", "Everest Region", 4.7, 1130, 1350, 14, "Hard", "Spring", 5357, "Turquoise glacial lakes and the Gokyo Ri viewpoint."},
	{7, "Kathmandu Durbar Square", "Cultural Heritage", "Kathmandu Valley", 4.3, 5120, 30, 1, "Easy", "Year-round", 1350, "Royal palace complex at the heart of the old city."},
	{8, "Patan Durbar Square", "Cultural Heritage", "Kathmandu Valley", 4.4, 3890, 25, 1, "Easy", "Year-round", 1350, "Newar architecture and the Patan Museum."},
	{9, "Bhaktapur Durbar Square", "Cultural Heritage", "Kathmandu Valley", 4.5, 4210, 25, 1, "Easy", "Year-round", 1350, "Best preserved of the valley's three royal squares."},
	{10, "Swayambhunath (Monkey Temple)", "Religious Site", "Kathmandu Valley", 4.4, 6230, 10, 1, "Easy", "Year-round", 1350, "Hilltop stupa overlooking the Kathmandu valley."},
	{11, "Boudhanath Stupa", "Religious Site", "Kathmandu Valley", 4.6, 7340, 10, 1, "Easy", "Year-round", 1350, "One of the largest spherical stupas in the world."},
	{12, "Pashupatinath Temple", "Religious Site", "Kathmandu Valley", 4.5, 5870, 12, 1, "Easy", "Year-round", 1350, "Sacred Shiva temple on the banks of the Bagmati."},
	{13, "Lumbini (Buddha Birthplace)", "Religious Site", "Lumbini", 4.5, 3420, 12, 1, "Easy", "Year-round", 150, "Birthplace of Siddhartha Gautama and monastic zone."},
	{14, "Pokhara Lakeside", "Nature & Wildlife", "Pokhara Region", 4.5, 4860, 175, 2, "Easy", "Year-round", 850, "Lakeside strip with mountain views and boat hire."},
	{15, "Chitwan National Park", "Nature & Wildlife", "Chitwan", 4.4, 3150, 350, 3, "Easy-Moderate", "Winter", 150, "Jungle safaris for one-horned rhino and Bengal tiger."},
	{16, "Rara Lake", "Nature & Wildlife", "Far West Nepal", 4.7, 410, 600, 7, "Moderate-Hard", "Autumn", 2950, "Nepal's largest lake, deep in the far western hills."},
	{17, "Phewa Lake", "Nature & Wildlife", "Pokhara Region", 4.4, 3920, 100, 1, "Easy", "Year-round", 850, "Boating lake beneath the Annapurna skyline."},
	{18, "Begnas Lake", "Nature & Wildlife", "Pokhara Region", 4.3, 1240, 100, 1, "Easy", "Year-round", 650, "Quieter sister lake east of Pokhara."},
	{19, "Nagarkot Hill Station", "Hill Station", "Kathmandu Valley", 4.2, 2780, 100, 1, "Easy", "Year-round", 2150, "Sunrise views over the Himalaya from the valley rim."},
	{20, "Dhulikhel", "Hill Station", "Kathmandu Valley", 4.1, 1320, 100, 1, "Easy", "Year-round", 1550, "Old Newar town with panoramic mountain views."},
	{21, "Bandipur Village", "Hill Station", "Pokhara Region", 4.4, 1560, 125, 1, "Easy", "Year-round", 1050, "Preserved hilltop bazaar town between Kathmandu and Pokhara."},
	{22, "Bungee Jumping (The Last Resort)", "Adventure Sports", "Kathmandu Valley", 4.6, 890, 100, 1, "Hard", "Year-round", 150, "160m gorge jump over the Bhote Koshi river."},
	{23, "Paragliding in Pokhara", "Adventure Sports", "Pokhara Region", 4.7, 2140, 115, 1, "Moderate", "Year-round", 850, "Tandem flights from Sarangkot over Phewa Lake."},
	{24, "White Water Rafting Trishuli", "Adventure Sports", "Kathmandu Valley", 4.3, 1670, 75, 1, "Moderate", "Year-round", 550, "Accessible grade III rapids on the Trishuli river."},
	{25, "Gosaikunda Lake", "Nature & Wildlife", "Langtang Region", 4.6, 530, 450, 4, "Moderate-Hard", "Summer", 4200, "Alpine pilgrimage lakes high in the Langtang range."},
	{26, "Tilicho Lake", "Nature & Wildlife", "Annapurna Region", 4.7, 480, 800, 8, "Hard", "Autumn", 4900, "One of the highest lakes in the world."},
	{27, "Janakpur Temple", "Religious Site", "Lumbini", 4.3, 980, 12, 1, "Easy", "Year-round", 150, "Janaki Mandir, centre of the Mithila heartland."},
	{28, "Bardiya National Park", "Nature & Wildlife", "Far West Nepal", 4.6, 720, 350, 3, "Easy-Moderate", "Winter", 150, "Wilder, quieter alternative to Chitwan."},
	{29, "Koshi Tappu Wildlife Reserve", "Nature & Wildlife", "Lumbini", 4.2, 340, 200, 2, "Easy", "Winter", 150, "Wetland reserve known for water birds and wild buffalo."},
	{30, "Sarangkot Sunrise Point", "Hill Station", "Pokhara Region", 4.4, 2430, 100, 1, "Easy-Moderate", "Year-round", 1550, "Dawn panorama of the Annapurna and Dhaulagiri ranges."},
}

const upsertAttraction = `
	INSERT INTO attractions
		(attraction_id, name, category, region, rating, num_reviews,
		 avg_cost_usd, duration_days, difficulty, best_season, altitude_meters, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (attraction_id) DO UPDATE SET
		name            = EXCLUDED.name,
		category        = EXCLUDED.category,
		region          = EXCLUDED.region,
		rating          = EXCLUDED.rating,
		num_reviews     = EXCLUDED.num_reviews,
		avg_cost_usd    = EXCLUDED.avg_cost_usd,
		duration_days   = EXCLUDED.duration_days,
		difficulty      = EXCLUDED.difficulty,
		best_season     = EXCLUDED.best_season,
		altitude_meters = EXCLUDED.altitude_meters,
		description     = EXCLUDED.description
`

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	for _, a := range catalog {
		_, err := pool.Exec(ctx, upsertAttraction,
			a.ID, a.Name, a.Category, a.Region, a.Rating, a.NumReviews,
			a.AvgCostUSD, a.Duration, a.Difficulty, a.BestSeason, a.Altitude, a.Description,
		)
		if err != nil {
			logger.Error("Failed to seed attraction",
				slog.Int("attractionID", a.ID), slog.Any("error", err))
			os.Exit(1)
		}
	}

	logger.Info("Catalog seeded", slog.Int("attractions", len(catalog)))
}
