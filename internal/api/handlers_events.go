package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/auragon/internal/models"
	"go.uber.org/zap"
)

const (
	eventsLogs           = "logs"
	sseHeartbeatInterval = 15 * time.Second
)

// StreamEvents sends the current snapshot of a collection as a Server-Sent
// Event, then a new one after every change. The stream ends when the client
// goes away or the server shuts down.
func (handler *Handler) StreamEvents(c *fiber.Ctx) error {
	name := c.Params("collection")
	language := currentLanguage(c)

	var stream func(w *bufio.Writer) error
	if name == eventsLogs {
		sub, err := handler.logs.Subscribe()
		if err != nil {
			return handler.internalError(c, "subscribe to history", err)
		}
		stream = func(w *bufio.Writer) error {
			defer sub.Close()
			return streamSnapshots(w, sub.C, sseHeartbeatInterval, func(logs []models.MigraineLog) any {
				return handler.buildLogViews(language, logs)
			})
		}
	} else {
		collection, ok := models.ParseCollection(name)
		if !ok {
			return handler.apiError(c, fiber.StatusNotFound, "unknown collection")
		}
		sub, err := handler.options.Subscribe(collection)
		if err != nil {
			return handler.internalError(c, "subscribe to options", err)
		}
		stream = func(w *bufio.Writer) error {
			defer sub.Close()
			return streamSnapshots(w, sub.C, sseHeartbeatInterval, func(options []models.Option) any {
				return options
			})
		}
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	logger := handler.logger.With(zap.String("stream", name))
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		logger.Debug("event stream opened")
		if err := stream(w); err != nil {
			logger.Debug("event stream closed", zap.Error(err))
			return
		}
		logger.Debug("event stream closed")
	})
	return nil
}

// streamSnapshots writes one "snapshot" event per received snapshot and a
// comment line every heartbeat. It returns nil when snapshots is closed and
// the write error once the client is gone.
func streamSnapshots[T any](w *bufio.Writer, snapshots <-chan []T, heartbeat time.Duration, view func([]T) any) error {
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}
			if err := writeSnapshotEvent(w, view(snapshot)); err != nil {
				return err
			}
		case <-ticker.C:
			if _, err := w.WriteString(": ping\n\n"); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
}

func writeSnapshotEvent(w *bufio.Writer, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}
