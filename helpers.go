package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/streadway/amqp"
)

const updatesExchange = "classification_updates"

// --- File Download ---

func DownloadFromR2(ctx context.Context, client *s3.Client, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func newR2Client(awsConfig aws.Config, accountID string) *s3.Client {
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
	})
}

type r2Fetcher struct {
	client *s3.Client
	bucket string
}

// Fetch downloads an uploaded résumé, retrying transient network failures.
func (f *r2Fetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	return retry(3, func() ([]byte, error) {
		return DownloadFromR2(ctx, f.client, f.bucket, key)
	})
}

// --- Updates ---

type amqpPublisher struct {
	conn *amqp.Connection
}

func (p *amqpPublisher) Publish(update ClassificationUpdate) error {
	return publishClassificationUpdate(p.conn, update)
}

func publishClassificationUpdate(rabbitConn *amqp.Connection, update ClassificationUpdate) error {
	ch, err := rabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}
	routingKey := fmt.Sprintf("resume.%s", update.ResumeID)

	return ch.Publish(
		updatesExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
