package handler

import (
	"net/http"
	"strconv"

	"crmgas/internal/dto"
	"crmgas/internal/middleware"
	"crmgas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary      Abrir caixa
// @Description  Abre a sessão de caixa do operador autenticado. No máximo um caixa aberto por operador.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AbrirCaixaRequest true "Saldo inicial"
// @Success      201  {object} dto.CaixaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary      Fechar caixa
// @Description  Fecha o caixa aberto do operador: calcula saldo esperado e diferença contra o contado.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FecharCaixaRequest true "Saldo contado"
// @Success      200  {object} dto.FechamentoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Fechar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAtual godoc
// @Summary      Caixa aberto do operador
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CaixaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caixa/atual [get]
func (h *CaixaHandler) GetAtual(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.GetAtual(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historico godoc
// @Summary      Histórico de caixas fechados
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Página (default 1)"
// @Param        limit query int false "Registros por página (default 20)"
// @Success      200 {object} map[string]interface{}
// @Router       /v1/caixa/historico [get]
func (h *CaixaHandler) Historico(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := h.svc.Historico(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// ListMovimentos godoc
// @Summary      Movimentos de um caixa
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do caixa"
// @Success      200 {array} dto.MovimentoCaixaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caixa/{id}/movimentos [get]
func (h *CaixaHandler) ListMovimentos(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	items, err := h.svc.ListMovimentos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
