package main

import (
	"flag"

	"go.uber.org/zap"

	"bloghub/crud"
	"bloghub/domain"
	"bloghub/errs"
	"bloghub/http"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're
	// running in production, requiring a .config.json file to be present
	// before the application starts.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	seedBool := flag.Bool("seed", false, "Provide this flag to create a default set of groups on startup.")
	flag.Parse()

	// Load configuration from a .config.json file if present, otherwise use
	// the default dev setup.
	config := LoadConfig(*productionBool)

	// Set up structured logging and install it as the global logger, so the
	// errs package can report through it as well.
	logger := newLogger(config.IsProd())
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper, config.HMACKey),
		crud.WithGroup(),
		crud.WithPost(),
		crud.WithComment(),
		crud.WithFollow(),
		crud.WithImage(config.Images),
	)
	must(err)

	// Groups are created out-of-band. The -seed flag bootstraps a default set
	// for development.
	if *seedBool {
		seedGroups(logger, services.Group)
	}

	// Set up a webserver and serve the app.
	server := http.NewServer(config.IsProd(), config.CSRFKey, config.PageSize, logger, services)
	server.Run(config.Port)
}

// newLogger builds the zap logger matching the environment.
func newLogger(isProd bool) *zap.Logger {
	if isProd {
		logger, err := zap.NewProduction()
		must(err)
		return logger
	}
	logger, err := zap.NewDevelopment()
	must(err)
	return logger
}

// seedGroups creates a default set of groups. Groups that already exist are
// left alone.
func seedGroups(logger *zap.Logger, gs domain.GroupService) {
	groups := []domain.Group{
		{Slug: "general", Title: "General", Description: "Anything goes."},
		{Slug: "tech", Title: "Technology", Description: "Software, hardware and everything in between."},
		{Slug: "travel", Title: "Travel", Description: "Places worth writing about."},
	}
	for _, group := range groups {
		group := group
		if err := gs.Create(&group); err != nil {
			if errs.ErrorCode(err) == errs.EINVALID {
				continue
			}
			logger.Warn("seeding group failed", zap.String("slug", group.Slug), zap.Error(err))
		}
	}
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
