package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/eventopia-server/internal/api/http/response"
	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/model"
)

// TokenIssuer signs access tokens for principals.
type TokenIssuer interface {
	Issue(ctx context.Context, principal model.Principal) (string, error)
}

// Token handles access token issuance.
type Token struct {
	tokenService TokenIssuer
	validator    *Validator
	logger       *logger.Logger
}

// NewToken creates a new Token handler.
func NewToken(tokenService TokenIssuer, validator *Validator, logger *logger.Logger) *Token {
	return &Token{
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// Issue signs the posted claims. The body must carry an address-shaped email; every other
// member is embedded in the token as is.
func (h *Token) Issue(w http.ResponseWriter, r *http.Request) {
	var claims map[string]any
	if err := decodeJSON(w, r, &claims); err != nil {
		writeError(w, err)
		return
	}
	if claims == nil {
		writeError(w, model.NewErrValidation("request body must be a JSON object"))
		return
	}

	principal, err := model.PrincipalFromMap(claims)
	if err != nil {
		writeError(w, model.NewErrValidation("field %q must be a string", model.ClaimEmail))
		return
	}
	if err := h.validator.Email(principal.Email); err != nil {
		writeError(w, err)
		return
	}
	if name, ok := principal.ReservedClaim(); ok {
		writeError(w, model.NewErrValidation("claim %q is reserved", name))
		return
	}

	h.logger.Debug("Token handler: issuing token", "email", principal.Email)

	token, err := h.tokenService.Issue(r.Context(), principal)
	if err != nil {
		h.logger.Error("Token handler: issue failed",
			"email", principal.Email,
			"error", err.Error())
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, tokenResponse{Token: token})
}
