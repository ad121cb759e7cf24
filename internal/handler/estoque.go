package handler

import (
	"net/http"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/service"

	"github.com/gin-gonic/gin"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada de estoque
// @Description  Soma unidades ao estoque do produto e registra o movimento.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MovimentoEstoqueRequest true "Produto, quantidade e motivo"
// @Success      201  {object} dto.MovimentoEstoqueResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/estoque/entrada [post]
func (h *EstoqueHandler) RegistrarEntrada(c *gin.Context) {
	var req dto.MovimentoEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntrada(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarAvaria godoc
// @Summary      Registrar avaria
// @Description  Baixa unidades danificadas ou perdidas. O estoque nunca fica negativo.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MovimentoEstoqueRequest true "Produto, quantidade e motivo"
// @Success      201  {object} dto.MovimentoEstoqueResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/estoque/avaria [post]
func (h *EstoqueHandler) RegistrarAvaria(c *gin.Context) {
	var req dto.MovimentoEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarAvaria(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMovimentos godoc
// @Summary      Listar movimentos de estoque
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Param        produto_id query string false "UUID do produto"
// @Param        tipo       query string false "venda | entrada | avaria | estorno"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.MovimentoEstoqueListResponse
// @Router       /v1/estoque/movimentos [get]
func (h *EstoqueHandler) ListMovimentos(c *gin.Context) {
	var filter dto.MovimentoEstoqueFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovimentos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
