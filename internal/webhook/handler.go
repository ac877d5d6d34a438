package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "vision/pkg/errors"
	pkgLog "vision/pkg/log"
	pkgResponse "vision/pkg/response"
)

const maxPayloadBytes = 5 << 20

// Applier is what the handler hands parsed events to.
type Applier interface {
	Apply(ctx context.Context, ev Event) (ApplyOutput, error)
}

// Handler receives GitHub webhook deliveries.
type Handler struct {
	intake   Applier
	security *SecurityValidator
	l        pkgLog.Logger
}

func NewHandler(intake Applier, securityConfig SecurityConfig, l pkgLog.Logger) *Handler {
	return &Handler{
		intake:   intake,
		security: NewSecurityValidator(securityConfig),
		l:        l,
	}
}

// RegisterRoutes maps the webhook endpoint under /integrations/github.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/integrations/github/webhook", h.HandleGitHubWebhook)
}

// HandleGitHubWebhook processes GitHub issues and pull_request events.
// @Summary GitHub webhook
// @Description Turn issue and pull request events into tasks
// @Tags Integrations
// @Accept json
// @Produce json
// @Param X-GitHub-Event header string true "Event type"
// @Param X-Hub-Signature-256 header string true "HMAC signature"
// @Success 200 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /api/v1/integrations/github/webhook [post]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		pkgResponse.Error(c, pkgErrors.NewHTTPError(http.StatusForbidden, err.Error()), nil)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook: read body: %v", err)
		pkgResponse.Error(c, pkgErrors.ErrBadRequest, nil)
		return
	}

	if err := h.security.ValidateGitHubSignature(body, c.GetHeader("X-Hub-Signature-256")); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		pkgResponse.Error(c, pkgErrors.NewHTTPError(http.StatusUnauthorized, "invalid signature"), nil)
		return
	}

	if err := h.security.CheckRateLimit("github:" + c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	eventType := c.GetHeader("X-GitHub-Event")
	if eventType == "ping" {
		pkgResponse.OK(c, gin.H{"status": "pong"})
		return
	}

	ev, err := ParseGitHubEvent(eventType, body)
	if errors.Is(err, ErrUnsupportedEvent) {
		h.l.Infof(ctx, "Unsupported GitHub event type: %s", eventType)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event type"})
		return
	}
	if err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		pkgResponse.Error(c, pkgErrors.ErrBadRequest, nil)
		return
	}

	out, err := h.intake.Apply(ctx, ev)
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook: apply: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, gin.H{"status": string(out.Outcome), "task_id": out.TaskID})
}
