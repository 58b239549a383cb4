package worker

import (
	"github.com/spec-kit/admin-service/internal/service"
)

// StartAuditWorker registers the audit sinks.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
