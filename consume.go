package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumeclassifier/internal/extract"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const jobsQueue = "resume_classifications"

var retryDelay = 500 * time.Millisecond

// retry retries a function up to `attempts` times with linear backoff
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			time.Sleep(retryDelay * time.Duration(i+1))
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func failedUpdate(update ClassificationUpdate, message string, err error) ClassificationUpdate {
	update.Status = statusFailed
	update.Message = message
	update.Error = err.Error()
	return update
}

// processJob classifies the résumé named by job and returns the final update
// to publish. Failures are reported in the update, never returned.
func processJob(ctx context.Context, job ClassificationJob, workerConfig *WorkerConfig) ClassificationUpdate {
	update := ClassificationUpdate{ResumeID: job.ResumeID, Timestamp: time.Now()}
	logger := log.With().Str("resume_id", job.ResumeID.String()).Logger()

	resume, err := workerConfig.Resumes.GetResumeByID(ctx, job.ResumeID)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Warn().Msg("resume not found")
		return failedUpdate(update, "resume not found", err)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to look up resume")
		return failedUpdate(update, "resume lookup failed", err)
	}

	fileBytes, err := workerConfig.Objects.Fetch(ctx, resume.ObjectKey)
	if err != nil {
		logger.Error().Err(err).Str("object_key", resume.ObjectKey).Msg("failed to download resume")
		return failedUpdate(update, "file download failed", err)
	}

	screening, err := screenResume(workerConfig.Pipeline, extract.NewDocument(resume.OriginalFilename, fileBytes))
	if screening.Warning != nil {
		update.Warning = screening.Warning.Error()
	}
	if err != nil {
		logger.Error().Err(err).Str("file", resume.OriginalFilename).Msg("classification failed")
		return failedUpdate(update, "classification failed", err)
	}

	update.Timestamp = time.Now()
	if screening.NoText {
		update.Status = statusNoText
		update.Message = noReadableTextMessage
		return update
	}

	update.Status = statusCompleted
	update.Message = "classification completed"
	update.Category = screening.Category
	logger.Info().Str("category", screening.Category).Msg("resume classified")
	return update
}

func (workerConfig *WorkerConfig) publish(update ClassificationUpdate) {
	if err := workerConfig.Updates.Publish(update); err != nil {
		log.Error().Err(err).Str("resume_id", update.ResumeID.String()).Msg("failed to publish update")
	}
}

func handleMessage(ctx context.Context, id int, body []byte, workerConfig *WorkerConfig) {
	job := ClassificationJob{}
	if err := json.Unmarshal(body, &job); err != nil {
		log.Error().Err(err).Int("worker", id).Msg("error unmarshalling message body")
		workerConfig.publish(failedUpdate(
			ClassificationUpdate{ResumeID: job.ResumeID, Timestamp: time.Now()},
			"classification failed", err))
		return
	}
	log.Info().Int("worker", id).Str("resume_id", job.ResumeID.String()).Msg("processing resume")

	workerConfig.publish(ClassificationUpdate{
		ResumeID:  job.ResumeID,
		Status:    statusProcessing,
		Message:   "classification started",
		Timestamp: time.Now(),
	})
	workerConfig.publish(processJob(ctx, job, workerConfig))
}

func worker(id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) {
	defer wg.Done()
	conn, err := amqp.Dial(workerConfig.RABBITMQUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("error dialling rabbitmq")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to rabbitmq channel")
	}
	defer ch.Close()
	_, err = ch.QueueDeclare(
		jobsQueue,
		true,  // durable (survives broker restarts)
		false, // auto-delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}

	msgs, err := ch.Consume(
		jobsQueue,
		"",    // consumer tag
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error consuming rabbitmq messages")
	}

	for msg := range msgs {
		handleMessage(context.Background(), id+1, msg.Body, workerConfig)
	}
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := 0; i < numWorkers; i++ {
		log.Info().Int("worker", i+1).Msg("worker started")
		go worker(i, workerConfig, &wg)
	}
	wg.Wait() // block until all workers finish
}
