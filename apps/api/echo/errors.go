package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if herr, ok := errors.Cause(err).(*echo.HTTPError); ok {
			if herr.Internal != nil {
				if internal, ok := herr.Internal.(*echo.HTTPError); ok {
					herr = internal
				}
			}
			code = herr.Code
			message = herr.Message
		} else {
			switch core.KindOf(err) {
			case core.KindInvalid:
				code = http.StatusBadRequest
				message = validationMessage(errors.Cause(err), translator)
			case core.KindMalformedKey:
				code = http.StatusBadRequest
				message = err.Error()
			case core.KindNotFound:
				code = http.StatusNotFound
				message = core.ErrNotFound.Error()
			case core.KindDuplicateKey:
				code = http.StatusConflict
				message = core.ErrDuplicateKey.Error()
			case core.KindMissingReference:
				code = http.StatusUnprocessableEntity
				message = core.ErrMissingReference.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
					"method": ctx.Request().Method,
					"path":   ctx.Request().URL.Path,
				})

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// validationMessage flattens validation failures into {field: message}.
func validationMessage(cause error, translator ut.Translator) interface{} {
	switch origErr := cause.(type) {
	case validator.ValidationErrors:
		return core.TranslateErrors(origErr, translator)
	case *core.ValidationError:
		if origErr.Fields == nil {
			return origErr.Error()
		}
		fldErrs := make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			fldErrs[fErr.Field] = fErr.Error
		}
		return fldErrs
	}
	return cause.Error()
}
