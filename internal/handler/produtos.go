package handler

import (
	"net/http"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Criar godoc
// @Summary      Cadastrar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarProdutoRequest true "Dados do produto"
// @Success      201  {object} dto.ProdutoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/produtos [post]
func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObterPorID godoc
// @Summary      Detalhe do produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [get]
func (h *ProdutosHandler) ObterPorID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        nome  query string false "Busca por nome"
// @Param        tipo  query string false "gas | agua | acessorio"
// @Param        ativo query string false "false | all (default: ativos)"
// @Param        page  query int    false "Página (default 1)"
// @Param        limit query int    false "Registros por página (default 20)"
// @Success      200 {object} dto.ProdutoListResponse
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	var filter dto.ProdutoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary      Atualizar produto
// @Description  Atualiza nome, tipo e preço. Estoque muda apenas por vendas, entradas e avarias.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "UUID do produto"
// @Param        body body dto.AtualizarProdutoRequest true "Campos a atualizar"
// @Success      200  {object} dto.ProdutoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/produtos/{id} [put]
func (h *ProdutosHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary      Desativar produto (soft delete)
// @Tags         produtos
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [delete]
func (h *ProdutosHandler) Desativar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reativar godoc
// @Summary      Reativar produto
// @Tags         produtos
// @Security     BearerAuth
// @Param        id path string true "UUID do produto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id}/reativar [post]
func (h *ProdutosHandler) Reativar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Reativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
