package content

import (
	"github.com/gin-gonic/gin"
	"github.com/politiekmatcher/core/internal/pkg/pagination"
	"github.com/politiekmatcher/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	st := rg.Group("/statements")
	st.GET("", h.list)
	st.GET("/themes", h.themes)
	st.GET("/:id", h.get)
	st.GET("/:id/positions", h.positions)

	p := rg.Group("/parties")
	p.GET("", h.listParties)
	p.GET("/:id", h.getParty)
}

// GET /statements?theme=&topic=
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(q, c.Query("theme"), c.Query("topic"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]statementResponse, len(items))
	for i := range items {
		out[i] = toStatementResponse(&items[i])
	}
	response.Paged(c, out, pag)
}

// GET /statements/themes
func (h *Handler) themes(c *gin.Context) {
	themes, err := h.svc.Themes()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, themes)
}

// GET /statements/:id
func (h *Handler) get(c *gin.Context) {
	st, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if st == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toStatementResponse(st))
}

// GET /statements/:id/positions
func (h *Handler) positions(c *gin.Context) {
	st, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if st == nil {
		response.NotFound(c)
		return
	}
	items, err := h.svc.Positions(st.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]positionResponse, len(items))
	for i := range items {
		out[i] = toPositionResponse(&items[i])
	}
	response.OK(c, out)
}

// GET /parties
func (h *Handler) listParties(c *gin.Context) {
	items, err := h.svc.ListParties()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]partyResponse, len(items))
	for i := range items {
		out[i] = toPartyResponse(&items[i])
	}
	response.OK(c, out)
}

// GET /parties/:id
func (h *Handler) getParty(c *gin.Context) {
	p, err := h.svc.GetParty(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if p == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toPartyResponse(p))
}
