package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nedcoach/coach-flows/coach"
	"github.com/nedcoach/coach-flows/config"
	"github.com/nedcoach/coach-flows/environment"
	"github.com/nedcoach/coach-flows/services/tts"
	"github.com/nedcoach/coach-flows/services/vision"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	activity := flag.String("activity", "", "activity to coach (basketball|yoga|guitar)")
	videoSource := flag.String("video-source", "", "'webcam' for camera input, or path to a video file")
	ttsProvider := flag.String("tts-provider", "gemini", "TTS provider to use (gemini|chatgpt)")
	configPath := flag.String("config", "", "path to coaching configuration file")
	flag.Parse()

	if *videoSource == "" || *configPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	coaching, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if *activity != "" {
		coaching.Activity = *activity
	}
	err = coaching.Validate()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	providerName := tts.Providers.Parse(*ttsProvider)
	if providerName == nil {
		log.Fatal().Str("provider", *ttsProvider).Msg("unknown tts provider")
	}

	// credentials are checked before any capture or splitting starts
	geminiKey := environment.GetGeminiAPIKey()
	if geminiKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY not found in environment variables")
	}

	provider, err := tts.New(*providerName, tts.Credentials{
		GeminiAPIKey: geminiKey,
		OpenAIAPIKey: environment.GetOpenAIAPIKey(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("initializing tts provider")
	}

	analyzer := vision.NewAnalyzer(vision.NewClient(geminiKey), coaching)
	pipeline := coach.NewPipeline(coaching, analyzer, provider, environment.GetWorkDir())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("activity", coaching.Activity).
		Str("source", *videoSource).
		Str("tts", providerName.Value).
		Msg("AI Coach started")

	if *videoSource == "webcam" {
		err = pipeline.RunLive(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("live run failed")
		}
		log.Info().Msg("AI Coach stopped")
		return
	}

	outputPath, err := pipeline.RunUpload(ctx, *videoSource)
	if err != nil {
		log.Fatal().Err(err).Msg("upload run failed")
	}
	log.Info().Str("output", outputPath).Msg("final video saved")
}
