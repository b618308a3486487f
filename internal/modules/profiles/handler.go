package profiles

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/politiekmatcher/core/internal/modules/matching"
	"github.com/politiekmatcher/core/internal/pkg/response"
	"github.com/politiekmatcher/core/internal/pkg/taskqueue"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	p := rg.Group("/profiles")
	p.POST("", h.createProfile)
	p.GET("/:id", h.getProfile)
	p.GET("/:id/responses", h.listResponses)
	p.POST("/:id/responses", h.submitResponse)
	p.GET("/:id/matches", h.partyMatches)
	p.GET("/:id/matches/:party/explanation", h.partyExplanation)

	rg.PATCH("/responses/:id/label", h.correctLabel)

	t := rg.Group("/tasks")
	t.GET("/:id", h.getTask)
	t.POST("/:id/retry", h.retryTask)
}

// POST /profiles
func (h *Handler) createProfile(c *gin.Context) {
	var dto createProfileDTO
	// Body is optional; an empty one creates a fresh anonymous profile.
	_ = c.ShouldBindJSON(&dto)
	if dto.SessionKey == "" {
		dto.SessionKey = c.GetHeader("X-Session-Key")
	}

	profile, err := h.svc.EnsureProfile(dto.SessionKey)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	n, err := h.svc.CountResponses(profile.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, profileResponse{
		ID:          profile.ID,
		IsCompleted: profile.IsCompleted,
		LastActive:  profile.LastActive,
		Responses:   n,
	})
}

// GET /profiles/:id
func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.svc.GetProfile(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if profile == nil {
		response.NotFound(c)
		return
	}
	n, err := h.svc.CountResponses(profile.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, profileResponse{
		ID:          profile.ID,
		IsCompleted: profile.IsCompleted,
		LastActive:  profile.LastActive,
		Responses:   n,
	})
}

// GET /profiles/:id/responses
func (h *Handler) listResponses(c *gin.Context) {
	profile, err := h.svc.GetProfile(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if profile == nil {
		response.NotFound(c)
		return
	}
	items, err := h.svc.ListResponses(profile.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]responseView, len(items))
	for i := range items {
		out[i] = toResponseView(&items[i])
	}
	response.OK(c, out)
}

// POST /profiles/:id/responses
func (h *Handler) submitResponse(c *gin.Context) {
	var dto submitResponseDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.SubmitResponse(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, toResponseView(resp))
}

// PATCH /responses/:id/label
func (h *Handler) correctLabel(c *gin.Context) {
	var dto correctLabelDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.CorrectLabel(c.Request.Context(), c.Param("id"), dto.Label)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, toResponseView(resp))
}

// GET /profiles/:id/matches
func (h *Handler) partyMatches(c *gin.Context) {
	profile, err := h.svc.GetProfile(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if profile == nil {
		response.NotFound(c)
		return
	}
	items, err := h.svc.PartyMatches(profile.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]partyMatchView, len(items))
	for i := range items {
		out[i] = toPartyMatchView(&items[i])
	}
	response.OK(c, out)
}

// GET /profiles/:id/matches/:party/explanation
func (h *Handler) partyExplanation(c *gin.Context) {
	text, err := h.svc.PartyExplanation(c.Request.Context(), c.Param("id"), c.Param("party"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"explanation": text})
}

// GET /tasks/:id
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, task)
}

// POST /tasks/:id/retry
func (h *Handler) retryTask(c *gin.Context) {
	task, err := h.svc.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	if task.Status != taskqueue.TaskFailed && task.Status != taskqueue.TaskCancelled {
		response.BadRequest(c, "only failed or cancelled tasks can be retried")
		return
	}
	newTask, err := h.svc.RetryTask(c.Request.Context(), task)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, newTask)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, matching.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	case errors.Is(err, matching.ErrAggregationUndefined):
		response.UnprocessableEntity(c, "insufficient data")
	case errors.Is(err, matching.ErrInferenceUnavailable):
		response.ServiceUnavailable(c, "inference backend unavailable")
	case errors.Is(err, errProfileNotFound),
		errors.Is(err, errStatementNotFound),
		errors.Is(err, errResponseNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
