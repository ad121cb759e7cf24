package handler

import (
	"net/http"

	"crmgas/internal/apierror"
	"crmgas/internal/dto"
	"crmgas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Lucro godoc
// @Summary      Relatório de faturamento por período
// @Description  Soma valor_total das vendas concluídas entre inicio e fim (inclusivos).
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Param        inicio query string true "YYYY-MM-DD"
// @Param        fim    query string true "YYYY-MM-DD"
// @Success      200 {object} dto.LucroResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/relatorios/lucro [get]
func (h *RelatoriosHandler) Lucro(c *gin.Context) {
	var filter dto.LucroFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return
	}
	resp, err := h.svc.Lucro(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClientesPorBairro godoc
// @Summary      Contagem de clientes ativos por bairro
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ClientesPorBairroItem
// @Router       /v1/relatorios/clientes-por-bairro [get]
func (h *RelatoriosHandler) ClientesPorBairro(c *gin.Context) {
	resp, err := h.svc.ClientesPorBairro(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
