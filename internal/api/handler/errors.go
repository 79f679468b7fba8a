package handler

import (
	"errors"
	"net/http"

	"github.com/marioraafat2252004/Slash-Analyses/internal/api/response"
	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
)

// writeError maps the error taxonomy to status classes: client input
// errors are 400, external-model failures (gateway or untrusted output)
// are 502, anything else is 500. Bodies are always {"detail": ...}.
func writeError(w http.ResponseWriter, err error) {
	var inputErr *domain.InputValidationError
	var gatewayErr *domain.GatewayError
	var malformedErr *domain.MalformedResponseError

	switch {
	case errors.As(err, &inputErr):
		response.BadRequest(w, inputErr.Msg)
	case errors.As(err, &gatewayErr), errors.As(err, &malformedErr):
		response.BadGateway(w, err.Error())
	default:
		response.InternalError(w, err.Error())
	}
}
