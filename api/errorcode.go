package api

import "github.com/citypulse/citypoints-api/store"

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "invalid authorization format",
		1001: "invalid token",
		1002: "admin access required",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1200: "unknown category",
		1201: "missing required fields",
		1202: "enrichment adds nothing new for this point",
		1203: "image too large",

		1300: "no location signal in photo, device or network",
		1301: "photo location does not match the submitted location",
		1302: "photo location does not match the network location",
		1303: "location outside the coverage area",

		1400: store.ErrPointNotFound.Error(),

		1500: "temporarily unavailable, please retry",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1000)
	errorInvalidToken               = errorJSON(1001)
	errorAdminOnly                  = errorJSON(1002)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorUnknownCategory       = errorJSON(1200)
	errorMissingRequiredFields = errorJSON(1201)
	errorNothingToEnrich       = errorJSON(1202)
	errorImageTooLarge         = errorJSON(1203)

	errorNoLocationSignal      = errorJSON(1300)
	errorPhotoLocationMismatch = errorJSON(1301)
	errorPhotoIPMismatch       = errorJSON(1302)
	errorOutsideCoverage       = errorJSON(1303)

	errorPointNotFound = errorJSON(1400)

	errorTemporarilyUnavailable = errorJSON(1500)
)

type ErrorResponse struct {
	Code     int64    `json:"code"`
	Message  string   `json:"message"`
	Guidance string   `json:"guidance,omitempty"`
	Fields   []string `json:"fields,omitempty"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func (e ErrorResponse) withGuidance(guidance string) ErrorResponse {
	e.Guidance = guidance
	return e
}

func (e ErrorResponse) withFields(fields []string) ErrorResponse {
	e.Fields = fields
	return e
}
