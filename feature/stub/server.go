package stub

import (
	"errors"
	"strconv"

	"atlan-sdk/core/loader"
	"atlan-sdk/core/logger"
	"atlan-sdk/core/middleware/auth"
	"atlan-sdk/core/middleware/rayid"
	"atlan-sdk/core/server"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthPath is served without authentication.
const HealthPath = "/health"

// NewApp builds the stub catalog server around a store.
func NewApp(store *Store, cfg server.Config, log *zap.Logger) (*fiber.App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               "atlan-sdk stub catalog",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             16 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{
					"errorCode":    "ATLAN-" + strconv.Itoa(fe.Code) + "-00-000",
					"errorMessage": fe.Message,
				})
			}
			return writeError(c, err)
		},
	})

	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(log, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})
	app.Get(HealthPath, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "entities": store.Len()})
	})
	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey, Skip: []string{HealthPath}}))

	mgr := loader.NewManager(log)
	mgr.Register(NewCatalogFeature(store, cfg, log))
	mgr.Register(NewWorkflowFeature(store, cfg, log, true))
	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}
