// Package save persists a new item together with its attached image. The
// image uploads first; if the metadata write then fails for good, the
// orphaned image is deleted before the error surfaces, so the blob store
// never holds an image with no corresponding item record.
package save

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	apperrors "github.com/yctseng/remindkit/internal/errors"
	"github.com/yctseng/remindkit/internal/logging"
	"github.com/yctseng/remindkit/internal/models"
	"github.com/yctseng/remindkit/internal/uuid"
)

// ItemStore is the remote document store surface used for metadata writes.
type ItemStore interface {
	// Save persists the item record.
	Save(ctx context.Context, item *models.Item) error
}

// BlobStore stores item images.
type BlobStore interface {
	// Upload stores the image bytes and returns their URI.
	Upload(ctx context.Context, data []byte) (string, error)

	// Delete removes the image at the given URI.
	Delete(ctx context.Context, uri string) error
}

// ReminderSaver schedules the saved item's reminder.
type ReminderSaver interface {
	Save(ctx context.Context, item *models.Item) error
}

// metadataSaveRetries is the number of retries after the initial metadata
// save attempt. Transient store failures are retried here and nowhere else
// in this package.
const metadataSaveRetries = 2

// Coordinator performs the image-then-metadata save with its single
// compensating action.
type Coordinator struct {
	items     ItemStore
	blobs     BlobStore
	reminders ReminderSaver

	// RetryInterval is the constant pause between metadata save attempts.
	RetryInterval time.Duration
}

// NewCoordinator creates a save Coordinator.
func NewCoordinator(items ItemStore, blobs BlobStore, reminders ReminderSaver) *Coordinator {
	return &Coordinator{
		items:         items,
		blobs:         blobs,
		reminders:     reminders,
		RetryInterval: 200 * time.Millisecond,
	}
}

// SaveWithImage saves a new item, uploading its image first when one is
// attached. Metadata-save failures after a successful upload are retried up
// to metadataSaveRetries times; on terminal failure the uploaded image is
// deleted and the caller receives a single ITEM_SAVE_FAILED error — the
// underlying transient error is intentionally not re-exposed, and a failed
// compensation delete is logged but reported the same way. On success the
// item's reminder is scheduled; a scheduling failure propagates as
// SCHEDULE_FAILED while the item itself remains saved.
func (c *Coordinator) SaveWithImage(ctx context.Context, item *models.Item, image []byte) (*models.Item, error) {
	if item.ID == "" {
		item.ID = models.UUID(uuid.New())
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	if len(image) == 0 {
		// Nothing to compensate: the error surfaces as-is.
		if err := c.items.Save(ctx, item); err != nil {
			return nil, err
		}
	} else {
		uri, err := c.blobs.Upload(ctx, image)
		if err != nil {
			return nil, err
		}
		item.ImageRef = uri

		policy := backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(c.RetryInterval), metadataSaveRetries),
			ctx)
		err = backoff.Retry(func() error {
			return c.items.Save(ctx, item)
		}, policy)
		if err != nil {
			if delErr := c.blobs.Delete(ctx, uri); delErr != nil {
				logging.WithComponent("save").
					WithField("image_ref", uri).
					WithError(delErr).
					Error("failed to delete orphaned image")
			}
			return nil, apperrors.New(apperrors.ErrItemSaveFailed, "failed to save item")
		}
	}

	if err := c.reminders.Save(ctx, item); err != nil {
		return item, err
	}
	return item, nil
}
