package main

import (
	"github.com/rs/zerolog"

	"farmersconnect/internal/config"
	"farmersconnect/internal/inference"
	"farmersconnect/internal/service"
)

// loadModels builds both adapters. A failure is logged and leaves that
// adapter nil so the matching endpoints answer "model not available" while the
// rest of the server keeps working.
func loadModels(cfg *config.Config, log zerolog.Logger) (service.CropRecommender, service.PriceEstimator) {
	var (
		crop       service.CropRecommender
		price      service.PriceEstimator
		classifier inference.Classifier
		regressor  inference.Regressor
	)

	remote := cfg.ModelBackend == config.BackendRemote
	if remote {
		if m, err := inference.NewRemoteModel(cfg.ModelServerURL, "crop", cfg.ModelTimeout, log); err != nil {
			log.Error().Err(err).Msg("crop model not available")
		} else {
			classifier = m
		}
		if m, err := inference.NewRemoteModel(cfg.ModelServerURL, "price", cfg.ModelTimeout, log); err != nil {
			log.Error().Err(err).Msg("price model not available")
		} else {
			regressor = m
		}
	}

	if !remote || classifier != nil {
		rec, err := inference.LoadCropRecommender(inference.CropArtifacts{
			ModelPath:    cfg.CropModelPath,
			MinMaxPath:   cfg.CropMinMaxPath,
			StandardPath: cfg.CropStandardPath,
		}, classifier)
		if err != nil {
			log.Error().Err(err).Msg("crop model not available")
		} else {
			crop = rec
			log.Info().Str("backend", cfg.ModelBackend).Msg("crop model loaded")
		}
	}

	if !remote || regressor != nil {
		est, err := inference.LoadPriceEstimator(inference.PriceArtifacts{
			ModelPath:     cfg.PriceModelPath,
			MarketPath:    cfg.MarketEncoderPath,
			CommodityPath: cfg.CommodityEncoderPath,
			UnitPath:      cfg.UnitEncoderPath,
		}, regressor)
		if err != nil {
			log.Error().Err(err).Msg("price model not available")
		} else {
			price = est
			log.Info().Str("backend", cfg.ModelBackend).Msg("price model loaded")
		}
	}

	return crop, price
}
