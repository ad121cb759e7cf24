package handler

import (
	"net/http"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/middleware"
	"crmgas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler { return &VendasHandler{svc: svc} }

// RegistrarVenda godoc
// @Summary      Registrar uma nova venda
// @Description  Cria uma venda ACID: congela o preço, desconta estoque sob lock e registra movimento de caixa.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVendaRequest true "Detalhe da venda"
// @Success      201  {object} dto.VendaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/vendas [post]
func (h *VendasHandler) RegistrarVenda(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegistrarVenda(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EstornarVenda godoc
// @Summary      Estornar venda
// @Description  Estorna uma venda: devolve o estoque e gera movimentos de caixa inversos. O registro original é preservado.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string                   true "UUID da venda"
// @Param        body body     dto.EstornarVendaRequest true "Motivo do estorno"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/vendas/{id} [delete]
func (h *VendasHandler) EstornarVenda(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.EstornarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EstornarVenda(c.Request.Context(), id, req.Motivo); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarVendas godoc
// @Summary      Listar vendas
// @Description  Retorna lista paginada de vendas filtrada por data, estado e cliente.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        data       query string false "Data YYYY-MM-DD (default: hoje)"
// @Param        estado     query string false "concluida | estornada | all"
// @Param        cliente_id query string false "UUID do cliente"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VendaListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/vendas [get]
func (h *VendasHandler) ListarVendas(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListVendas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GerarRecibo godoc
// @Summary      Recibo da venda em PDF
// @Tags         vendas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id}/recibo [get]
func (h *VendasHandler) GerarRecibo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	path, err := h.svc.GerarRecibo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "recibo_"+id.String()+".pdf")
}
