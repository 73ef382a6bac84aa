package di

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"portfolio-backend/application/ports"
	"portfolio-backend/application/services"
	"portfolio-backend/infrastructure/config"
	"portfolio-backend/infrastructure/sheets"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	LogLevel   zap.AtomicLevel
	Logger     *zap.Logger
	Handler    http.Handler
	Contact    *services.ContactService
	Notifier   ports.Notifier
	Sheets     *sheets.Client
	Limiter    auth.RateLimiter
	Metrics    *observability.Collector
	CloudWatch *observability.CloudWatchRecorder
	Tracer     *observability.TracerProvider
}

// CheckIntegrations logs which credentials are missing and verifies the SMTP login.
// Nothing here is fatal.
func (c *Container) CheckIntegrations(ctx context.Context) {
	if !c.Sheets.Configured() {
		c.Logger.Warn("Google Sheets not configured; contact submissions are logged only")
	}
	if c.Notifier == nil || !c.Notifier.Configured() {
		return
	}
	if err := c.Notifier.Verify(ctx); err != nil {
		c.Logger.Error("Email service verification failed", zap.Error(err))
		return
	}
	c.Logger.Info("Email service is ready")
}

// FlushInvocation waits for background contact work and ships buffered metrics.
// Lambda calls it before returning each response.
func (c *Container) FlushInvocation(ctx context.Context) error {
	c.Contact.Wait()
	if c.CloudWatch == nil {
		return nil
	}
	return c.CloudWatch.Flush(ctx)
}

// Shutdown releases everything the container started
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if err := c.FlushInvocation(ctx); err != nil {
		errs = append(errs, err)
	}
	if closer, ok := c.Limiter.(interface{ Close() }); ok {
		closer.Close()
	}
	if c.Tracer != nil {
		if err := c.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	_ = c.Logger.Sync()

	return errors.Join(errs...)
}
