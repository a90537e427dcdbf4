package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeclassifier/internal/classifier"
	"github.com/muhammadolammi/resumeclassifier/internal/database"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

type ResumeStore interface {
	GetResumeByID(ctx context.Context, id uuid.UUID) (database.Resume, error)
}

type ObjectFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type UpdatePublisher interface {
	Publish(update ClassificationUpdate) error
}

type WorkerConfig struct {
	Pipeline    *classifier.Pipeline
	Resumes     ResumeStore
	Objects     ObjectFetcher
	Updates     UpdatePublisher
	RABBITMQUrl string
}

// ClassificationJob is the body of a message on the resume_classifications queue.
type ClassificationJob struct {
	ResumeID uuid.UUID `json:"resume_id"`
}

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusNoText     = "no_text"
	statusFailed     = "failed"
)

type ClassificationUpdate struct {
	ResumeID  uuid.UUID `json:"resume_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Category  string    `json:"category,omitempty"`
	Warning   string    `json:"warning,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
