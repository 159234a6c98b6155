package stub

import (
	"atlan-sdk/core/logger"
	"atlan-sdk/core/server"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the catalog API from a Store.
type Handler struct {
	store  *Store
	cfg    server.Config
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, cfg server.Config, logger *zap.Logger) *Handler {
	return &Handler{store: store, cfg: cfg, logger: logger}
}

// RegisterEntityRoutes registers the metastore routes.
func (h *Handler) RegisterEntityRoutes(app fiber.Router) {
	group := app.Group("/api/meta")
	group.Post("/entity/bulk", h.HandleBulkSave)
	group.Delete("/entity/bulk", h.HandleBulkDelete)
	group.Get("/entity/guid/:guid", h.HandleGetByGUID)
	group.Get("/entity/uniqueAttribute/type/:typeName", h.HandleGetByUniqueAttribute)
	group.Post("/search/indexsearch", h.HandleIndexSearch)
}

// RegisterWorkflowRoutes registers the orchestration routes.
func (h *Handler) RegisterWorkflowRoutes(app fiber.Router) {
	group := app.Group("/api/service")
	group.Post("/workflows", h.HandleSubmitWorkflow)
	group.Post("/workflows/indexsearch", h.HandleSearchWorkflows)
	group.Post("/runs/indexsearch", h.HandleSearchRuns)
	group.Post("/runs/:id/stop", h.HandleStopRun)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.logger, c).Warn(msg, zap.Error(err))
	return writeError(c, err)
}

func parseBody(c *fiber.Ctx) (doc, error) {
	var body doc
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, badRequest("invalid JSON body: %v", err)
	}
	return body, nil
}

// HandleBulkSave creates or updates entities.
func (h *Handler) HandleBulkSave(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return h.fail(c, "Bulk save rejected", err)
	}
	var entities []doc
	for _, e := range asSlice(body["entities"]) {
		entities = append(entities, asDoc(e))
	}
	params := SaveParams{
		ReplaceClassifications:      c.QueryBool("replaceClassifications"),
		ReplaceBusinessAttributes:   c.QueryBool("replaceBusinessAttributes"),
		OverwriteBusinessAttributes: c.QueryBool("overwriteBusinessAttributes"),
	}
	resp, err := h.store.SaveEntities(entities, params)
	if err != nil {
		return h.fail(c, "Bulk save failed", err)
	}
	logger.WithRayID(h.logger, c).Debug("Bulk save", zap.Int("entities", len(entities)))
	return c.JSON(resp)
}

// HandleBulkDelete deletes entities by GUID.
func (h *Handler) HandleBulkDelete(c *fiber.Ctx) error {
	var guids []string
	for _, g := range c.Context().QueryArgs().PeekMulti("guid") {
		guids = append(guids, string(g))
	}
	if len(guids) == 0 {
		return h.fail(c, "Bulk delete rejected", badRequest("at least one guid is required"))
	}
	resp, err := h.store.DeleteEntities(guids, c.Query("deleteType"))
	if err != nil {
		return h.fail(c, "Bulk delete failed", err)
	}
	return c.JSON(resp)
}

// HandleGetByGUID returns one entity.
func (h *Handler) HandleGetByGUID(c *fiber.Ctx) error {
	e, err := h.store.GetEntity(c.Params("guid"))
	if err != nil {
		return h.fail(c, "Entity lookup failed", err)
	}
	return c.JSON(fiber.Map{"entity": e, "referredEntities": fiber.Map{}})
}

// HandleGetByUniqueAttribute returns one entity by qualified name.
func (h *Handler) HandleGetByUniqueAttribute(c *fiber.Ctx) error {
	qn := c.Query("attr:qualifiedName")
	if qn == "" {
		return h.fail(c, "Entity lookup rejected", badRequest("attr:qualifiedName is required"))
	}
	e, err := h.store.GetEntityByQualifiedName(c.Params("typeName"), qn)
	if err != nil {
		return h.fail(c, "Entity lookup failed", err)
	}
	return c.JSON(fiber.Map{"entity": e, "referredEntities": fiber.Map{}})
}

// HandleIndexSearch runs an index search.
func (h *Handler) HandleIndexSearch(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return h.fail(c, "Index search rejected", err)
	}
	if dsl := subDoc(body, "dsl"); dsl != nil {
		dsl["size"] = h.cfg.PageSize(int(toFloat(dsl["size"])))
	}
	resp, err := h.store.SearchEntities(body)
	if err != nil {
		return h.fail(c, "Index search failed", err)
	}
	return c.JSON(resp)
}

// HandleSubmitWorkflow stores a workflow and starts a run.
func (h *Handler) HandleSubmitWorkflow(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return h.fail(c, "Workflow rejected", err)
	}
	resp, err := h.store.SubmitWorkflow(body)
	if err != nil {
		return h.fail(c, "Workflow rejected", err)
	}
	logger.WithRayID(h.logger, c).Info("Workflow submitted", zap.String("workflow", str(subDoc(resp, "metadata"), "name")))
	return c.JSON(resp)
}

// HandleSearchWorkflows searches workflow templates.
func (h *Handler) HandleSearchWorkflows(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return h.fail(c, "Workflow search rejected", err)
	}
	resp, err := h.store.SearchWorkflows(body)
	if err != nil {
		return h.fail(c, "Workflow search failed", err)
	}
	return c.JSON(resp)
}

// HandleSearchRuns searches workflow runs.
func (h *Handler) HandleSearchRuns(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return h.fail(c, "Run search rejected", err)
	}
	resp, err := h.store.SearchRuns(body)
	if err != nil {
		return h.fail(c, "Run search failed", err)
	}
	return c.JSON(resp)
}

// HandleStopRun stops a workflow run.
func (h *Handler) HandleStopRun(c *fiber.Ctx) error {
	resp, err := h.store.StopRun(c.Params("id"))
	if err != nil {
		return h.fail(c, "Stop run failed", err)
	}
	return c.JSON(resp)
}
