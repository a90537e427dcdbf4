package main

import (
	"os"
	"time"

	"github.com/muhammadolammi/resumeclassifier/internal/classifier"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func artifactPaths() classifier.Paths {
	paths := classifier.DefaultPaths()
	if v := os.Getenv("MODEL_PATH"); v != "" {
		paths.Model = v
	}
	if v := os.Getenv("VECTORIZER_PATH"); v != "" {
		paths.Vectorizer = v
	}
	if v := os.Getenv("ENCODER_PATH"); v != "" {
		paths.Encoder = v
	}
	return paths
}

// mustLoadPipeline halts the process when any artifact is missing or unreadable.
func mustLoadPipeline() *classifier.Pipeline {
	paths := artifactPaths()
	artifacts, err := classifier.LoadArtifacts(paths)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load classifier artifacts")
	}
	log.Debug().
		Str("model", paths.Model).
		Str("vectorizer", paths.Vectorizer).
		Str("encoder", paths.Encoder).
		Msg("classifier artifacts loaded")
	return classifier.NewPipeline(artifacts)
}

func requireEnv(name string) string {
	v := os.Getenv(name)
	if v == "" {
		log.Fatal().Msgf("empty %s in environment", name)
	}
	return v
}
