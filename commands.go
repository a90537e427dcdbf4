package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/muhammadolammi/resumeclassifier/internal/database"
	"github.com/muhammadolammi/resumeclassifier/internal/extract"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "resumeclassifier",
		Short:         "Predict the job category of a resume",
		Long:          `Extracts text from a PDF, DOCX or TXT resume, normalizes it and classifies it with pre-trained model artifacts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewClassifyCommand())
	rootCmd.AddCommand(NewWorkerCommand())

	return rootCmd
}

func NewClassifyCommand() *cobra.Command {
	var showText bool

	cmd := &cobra.Command{
		Use:   "classify FILE",
		Short: "Predict the category of a single resume (pdf, docx or txt)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := mustLoadPipeline()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			screening, err := screenResume(pipeline, extract.NewDocument(filepath.Base(args[0]), data))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if screening.NoText {
				fmt.Fprintln(out, noReadableTextMessage)
				return nil
			}
			fmt.Fprintln(out, "Resume text successfully extracted.")
			if showText {
				fmt.Fprintf(out, "\n%s\n\n", screening.Text)
			}
			fmt.Fprintf(out, "Predicted Category: %s\n", screening.Category)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showText, "show-text", false, "Print the extracted resume text")

	return cmd
}

func NewWorkerCommand() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume classification jobs from RabbitMQ",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(workers)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 3, "Number of concurrent consumers")

	return cmd
}

func runWorker(workers int) error {
	if workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", workers)
	}
	pipeline := mustLoadPipeline()

	dbUrl := requireEnv("DB_URL")
	rabbitmqUrl := requireEnv("RABBITMQ_URL")
	r2Config := R2Config{
		AccountID: requireEnv("R2_ACCOUNT_ID"),
		Bucket:    requireEnv("R2_BUCKET"),
		AccessKey: requireEnv("R2_ACCESS_KEY"),
		SecretKey: requireEnv("R2_SECRET_KEY"),
	}

	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return fmt.Errorf("error opening db: %w", err)
	}
	defer db.Close()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2Config.AccessKey, r2Config.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return fmt.Errorf("error creating aws config: %w", err)
	}

	conn, err := amqp.Dial(rabbitmqUrl)
	if err != nil {
		return fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	defer conn.Close()

	workerConfig := WorkerConfig{
		Pipeline:    pipeline,
		Resumes:     database.New(db),
		Objects:     &r2Fetcher{client: newR2Client(awsConfig, r2Config.AccountID), bucket: r2Config.Bucket},
		Updates:     &amqpPublisher{conn: conn},
		RABBITMQUrl: rabbitmqUrl,
	}

	log.Info().Int("workers", workers).Msg("starting consumer worker pool")
	workerConfig.StartConsumerWorkerPool(workers)
	return nil
}
