// Package apierror provides the error taxonomy shared by services and the
// standardized response envelopes handlers return. All errors surfaced to
// clients go through this package so internal details (stack traces, SQL
// errors) never leak.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for HTTP mapping and caller retry decisions.
type Kind string

const (
	// KindValidacao: malformed input, rejected before any store access.
	KindValidacao Kind = "validacao"
	// KindNaoEncontrado: referenced entity absent.
	KindNaoEncontrado Kind = "nao_encontrado"
	// KindRegraNegocio: business rule violation (estoque insuficiente,
	// fechar caixa sem caixa aberto). Not retryable as-is.
	KindRegraNegocio Kind = "regra_negocio"
	// KindConflito: duplicate open caixa or lock contention. The caller may
	// retry the whole operation from scratch.
	KindConflito Kind = "conflito"
	// KindInfra: store unreachable or other infrastructure failure. Never
	// retried automatically; surfaced as fatal to the request.
	KindInfra Kind = "infra"
)

// Error is the canonical service-layer error. The enclosing transaction is
// always rolled back before one of these is returned.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Err }

func Validacao(detail string) *Error     { return &Error{Kind: KindValidacao, Detail: detail} }
func NaoEncontrado(detail string) *Error { return &Error{Kind: KindNaoEncontrado, Detail: detail} }
func RegraNegocio(detail string) *Error  { return &Error{Kind: KindRegraNegocio, Detail: detail} }
func Conflito(detail string) *Error      { return &Error{Kind: KindConflito, Detail: detail} }

func Infra(err error) *Error {
	return &Error{Kind: KindInfra, Detail: "Erro interno do servidor", Err: err}
}

// KindOf extracts the Kind from any error; unknown errors are infra.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInfra
}

// HTTPStatus maps an error to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidacao, KindRegraNegocio:
		return http.StatusBadRequest
	case KindNaoEncontrado:
		return http.StatusNotFound
	case KindConflito:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validacao", Fields: fields}
}
