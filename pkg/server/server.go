package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/storyq/storyq/pkg/config"
	"github.com/storyq/storyq/pkg/contract"
	"github.com/storyq/storyq/pkg/store"
	"github.com/storyq/storyq/pkg/utils"
)

// requestID tags every request with an id, reusing the client's
// X-Request-Id when one is sent.
func requestID(c *fiber.Ctx) error {
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}

	c.Set(fiber.HeaderXRequestID, id)
	c.SetUserContext(utils.WithRequestID(c.UserContext(), id))

	return c.Next()
}

func errorHandler(c *fiber.Ctx, err error) error {
	var e *contract.Error
	if !errors.As(err, &e) {
		code := contract.InternalError

		var f *fiber.Error
		if errors.As(err, &f) {
			switch f.Code {
			case fiber.StatusBadRequest:
				code = contract.BadRequest
			case fiber.StatusServiceUnavailable:
				code = contract.TemporarilyUnavailable
			case fiber.StatusNotFound:
				code = contract.EndpointNotFound
			}
		}

		e = contract.NewError(code, err.Error())
	}

	var fn func(format string, args ...any)

	switch e.StatusCode() {
	case fiber.StatusBadRequest:
		fn = logrus.Infof
	case fiber.StatusServiceUnavailable:
		fn = logrus.Warnf
	case fiber.StatusNotFound:
		fn = logrus.Debugf
	default:
		fn = logrus.Errorf
	}

	fn("Error encountered in %s %s (request %s): %s",
		c.Method(), c.Path(), utils.RequestID(c.UserContext()), err)

	return c.Status(e.StatusCode()).JSON(e)
}

// NewApp builds the HTTP application serving searches over stories.
func NewApp(cfg *config.Config, stories store.StoryStore) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		ReadBufferSize:        16384,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
		ServerHeader:          "storyq/" + cfg.Version,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(compress.New())
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestID)
	app.Use(logger.New(logger.Config{
		Format: "${status} - ${latency} ${method} ${path} ${respHeader:X-Request-Id}\n",
		Output: logrus.StandardLogger().Writer(),
	}))

	parser, err := NewHTTPRequestParser()
	if err != nil {
		return nil, err
	}

	apiApp := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	RegisterStoryServiceRoutes(NewStoryService(cfg, stories), parser, apiApp)
	app.Mount("/api/1.0", apiApp)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.SendString(cfg.Version)
	})

	return app, nil
}

// Launch serves until ctx is cancelled, then shuts down within the
// configured timeout.
func Launch(ctx context.Context, cfg *config.Config, stories store.StoryStore) error {
	app, err := NewApp(cfg, stories)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()

		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout.Duration); err != nil {
			logrus.Errorf("Failed to gracefully shutdown storyq server: %v", err)
		}
	}()

	logrus.Infof("Serving story searches on %s", cfg.Address)

	if err := app.Listen(cfg.Address); err != nil {
		return fmt.Errorf("failed to start storyq server: %w", err)
	}

	return nil
}
