package service

import (
	"time"

	"github.com/portwarden/portwarden/domain"
	"github.com/rs/xid"
)

// auditLimit bounds the log; the oldest entries are discarded silently,
// not archived.
const auditLimit = 100

func (svc *Service) appendAudit(kind domain.ActionKind, targetName string, pid int32, port uint16, succeeded bool, message string) {
	entry := &domain.AuditEntry{
		ID:            xid.New().String(),
		Timestamp:     time.Now().UTC(),
		ActionKind:    kind,
		TargetName:    targetName,
		PID:           pid,
		Port:          port,
		Succeeded:     succeeded,
		ResultMessage: message,
	}

	svc.auditMu.Lock()
	defer svc.auditMu.Unlock()
	svc.audit = append([]*domain.AuditEntry{entry}, svc.audit...)
	if len(svc.audit) > auditLimit {
		svc.audit = svc.audit[:auditLimit]
	}
}

// AuditEntries returns the log newest-first, at most 100 entries.
func (svc *Service) AuditEntries() []*domain.AuditEntry {
	svc.auditMu.Lock()
	defer svc.auditMu.Unlock()
	entries := make([]*domain.AuditEntry, len(svc.audit))
	copy(entries, svc.audit)
	return entries
}

// ClearAudit empties the log. Operator-initiated only; the mediator itself
// never removes entries.
func (svc *Service) ClearAudit() {
	svc.auditMu.Lock()
	defer svc.auditMu.Unlock()
	svc.audit = nil
}
