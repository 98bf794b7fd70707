package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notesaas/internal/repositories"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ExportResult describes a completed tenant snapshot.
type ExportResult struct {
	Object    string `json:"object"`
	URL       string `json:"url"`
	NoteCount int    `json:"note_count"`
}

// ExportService writes JSON snapshots of a tenant's notes to object storage.
type ExportService interface {
	ExportTenantNotes(ctx context.Context, tenantID uuid.UUID, slug string) (*ExportResult, error)
}

type exportService struct {
	client   *minio.Client
	noteRepo repositories.NoteRepository
	bucket   string
}

// NewExportService creates a new export service backed by MinIO.
func NewExportService(endpoint, accessKey, secretKey string, useSSL bool, bucket string, noteRepo repositories.NoteRepository) (ExportService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &exportService{
		client:   client,
		noteRepo: noteRepo,
		bucket:   bucket,
	}, nil
}

func (s *exportService) ExportTenantNotes(ctx context.Context, tenantID uuid.UUID, slug string) (*ExportResult, error) {
	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare export bucket: %w", err)
	}

	notes, err := s.noteRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes for export: %w", err)
	}

	payload, err := json.Marshal(map[string]any{
		"tenant_id":   tenantID,
		"exported_at": time.Now().UTC(),
		"notes":       notes,
	})
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%s/notes-%s.json", slug, time.Now().UTC().Format("20060102T150405Z"))
	_, err = s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, 15*time.Minute, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export URL: %w", err)
	}

	return &ExportResult{
		Object:    objectName,
		URL:       url.String(),
		NoteCount: len(notes),
	}, nil
}

func (s *exportService) ensureBucketExists(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
