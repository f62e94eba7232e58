package components

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/go-app-kernel/internal/callback"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
)

const errorLogRole = "errorhandler"

// ErrorHandler is the default target of errorhandler.error_callback and
// errorhandler.shutdown_callback. Errors go to <log_path>/errorhandler.log;
// the file is opened on the first error and closed at shutdown.
type ErrorHandler struct {
	logPath         string
	developmentMode bool

	mu     sync.Mutex
	logger *logger.Logger
	closer io.Closer
	count  int
}

func NewErrorHandler(logPath string, developmentMode bool) *ErrorHandler {
	return &ErrorHandler{logPath: logPath, developmentMode: developmentMode}
}

// HandleError records err. In development mode the error is also logged to
// the request logger so it shows up on the console.
func (h *ErrorHandler) HandleError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.logger == nil {
		if h.logPath == "" {
			h.logger = logger.NewLogger(errorLogRole)
			h.closer = io.NopCloser(nil)
		} else {
			h.logger, h.closer = logger.NewFileLogger(errorLogRole, h.logPath)
		}
	}
	h.count++
	h.logger.Error().Err(err).Int("seq", h.count).Msg("application error")

	if h.developmentMode {
		logger.FromContext(ctx).Error().Err(err).Msg("application error")
	}
}

// Errors returns how many errors have been handled.
func (h *ErrorHandler) Errors() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Shutdown closes the error log if it was opened.
func (h *ErrorHandler) Shutdown() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closer == nil {
		return nil
	}
	err := h.closer.Close()
	h.logger, h.closer = nil, nil
	return err
}

// Method exposes CustomErrorHandler and CustomShutdownFunction.
func (h *ErrorHandler) Method(name string) (callback.Func, bool) {
	switch name {
	case "CustomErrorHandler":
		return func(ctx context.Context, args ...any) (any, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("%w: CustomErrorHandler wants an error", callback.ErrInvalidCallback)
			}
			err, ok := args[0].(error)
			if !ok {
				err = errors.New(fmt.Sprint(args[0]))
			}
			h.HandleError(ctx, err)
			return nil, nil
		}, true
	case "CustomShutdownFunction":
		return func(context.Context, ...any) (any, error) {
			return nil, h.Shutdown()
		}, true
	}
	return nil, false
}
