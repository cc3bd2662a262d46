package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/top4/calldrivers/internal/models"
)

var validate = validator.New()

// decodeAndValidate binds a JSON body into dst and enforces its
// validate tags. Any failure is a ValidationError for the caller to
// surface as 400. Requests with bodies that do not decode into the
// declared schema are rejected here, not deep in the services.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("invalid request body")
	}

	if n, ok := dst.(aliasNormalizer); ok {
		n.normalizeAliases()
	}

	if err := validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return models.NewValidationError("invalid field %q", verrs[0].Field())
		}
		return models.NewValidationError("invalid request")
	}

	return nil
}

// aliasNormalizer is the compatibility shim for legacy clients that
// still send mobileno/phone/OTP instead of the canonical mobile/otp
// fields. Coalescing happens in exactly one place, before validation,
// so the rest of the code only ever sees the canonical schema.
type aliasNormalizer interface {
	normalizeAliases()
}
