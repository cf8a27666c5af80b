// Command seedcrops loads a crop catalog file (csv, xlsx or html) into the
// configured store.
//
//	seedcrops -file crops.xlsx -sheet Vegetables
package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KavinduWickramasekara98/UrbanRoots-backend/config"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/catalog"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/logx"
	"github.com/KavinduWickramasekara98/UrbanRoots-backend/pkg/store"
)

func main() {
	file := flag.String("file", "crops.csv", "catalog file (.csv, .xlsx, .html)")
	sheet := flag.String("sheet", "", "xlsx sheet name (default: first sheet)")
	dryRun := flag.Bool("dry-run", false, "parse and validate only")
	flag.Parse()

	cfg, err := config.LoadStore()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := logx.New(logx.Config{Level: cfg.LogLevel, Console: cfg.LogConsole}, nil)

	defs, err := catalog.LoadFile(*file, *sheet)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *file).Msg("load catalog")
	}
	logger.Info().Int("crops", len(defs)).Str("file", *file).Msg("catalog parsed")
	if *dryRun || len(defs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("store")
	}
	err = st.Crops.Upsert(ctx, defs)
	_ = st.Close(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("upsert crops")
	}
	logger.Info().Int("crops", len(defs)).Str("store", st.Driver).Msg("catalog stored")
}
