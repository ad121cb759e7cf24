package handler

import (
	"net/http"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/service"

	"github.com/gin-gonic/gin"
)

type LembretesHandler struct{ svc service.LembreteService }

func NewLembretesHandler(svc service.LembreteService) *LembretesHandler {
	return &LembretesHandler{svc: svc}
}

// CriarRegra godoc
// @Summary      Criar regra de lembrete
// @Description  Define quantos dias após a compra de um tipo de produto o cliente recebe o lembrete de recompra.
// @Tags         lembretes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarRegraLembreteRequest true "Regra"
// @Success      201  {object} dto.RegraLembreteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/lembretes/regras [post]
func (h *LembretesHandler) CriarRegra(c *gin.Context) {
	var req dto.CriarRegraLembreteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarRegra(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListRegras godoc
// @Summary      Listar regras de lembrete
// @Tags         lembretes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.RegraLembreteResponse
// @Router       /v1/lembretes/regras [get]
func (h *LembretesHandler) ListRegras(c *gin.Context) {
	resp, err := h.svc.ListRegras(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesativarRegra godoc
// @Summary      Desativar regra de lembrete
// @Tags         lembretes
// @Security     BearerAuth
// @Param        id path string true "UUID da regra"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/lembretes/regras/{id} [delete]
func (h *LembretesHandler) DesativarRegra(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DesativarRegra(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMensagens godoc
// @Summary      Fila de mensagens de lembrete
// @Tags         lembretes
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pendente | enviada | erro | all (default pendente)"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.MensagemListResponse
// @Router       /v1/lembretes/mensagens [get]
func (h *LembretesHandler) ListMensagens(c *gin.Context) {
	var filter dto.MensagemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMensagens(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GerarAgora godoc
// @Summary      Materializar lembretes agora
// @Description  Executa imediatamente a mesma consulta do cron e retorna quantas mensagens foram criadas.
// @Tags         lembretes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]int
// @Router       /v1/lembretes/gerar [post]
func (h *LembretesHandler) GerarAgora(c *gin.Context) {
	count, err := h.svc.GerarAgora(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"criadas": count})
}
