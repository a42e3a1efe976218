package scheduler

import (
	"strings"
	"sync"

	"github.com/ikkim/marketplace-api/internal/app/service"
	"github.com/ikkim/marketplace-api/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ScheduleOff disables the audit job.
const ScheduleOff = "off"

// DanglingAuditor counts association rows whose parent no longer resolves.
type DanglingAuditor interface {
	AuditDangling() (service.DanglingReport, error)
}

// AuditScheduler 고아 연관 행 점검 스케줄러 (읽기 전용)
type AuditScheduler struct {
	cron     *cron.Cron
	schedule string
	auditor  DanglingAuditor

	mu   sync.Mutex
	last service.DanglingReport
}

// NewAuditScheduler 점검 스케줄러 생성
func NewAuditScheduler(auditor DanglingAuditor, schedule string) *AuditScheduler {
	return &AuditScheduler{
		cron:     cron.New(),
		schedule: strings.TrimSpace(schedule),
		auditor:  auditor,
	}
}

// Enabled reports whether Start will register a job.
func (s *AuditScheduler) Enabled() bool {
	return s.schedule != "" && !strings.EqualFold(s.schedule, ScheduleOff)
}

// Start 스케줄러 시작
// schedule은 robfig/cron 표현식 ("@every 1h", "0 * * * *")
func (s *AuditScheduler) Start() error {
	if !s.Enabled() {
		logger.Info("Association audit scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(); err != nil {
			logger.Error("Scheduled association audit failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for association audit", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Association audit scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// RunOnce runs one audit and records its report.
func (s *AuditScheduler) RunOnce() (service.DanglingReport, error) {
	report, err := s.auditor.AuditDangling()
	if err != nil {
		return report, err
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	fields := map[string]interface{}{
		"store_products": report.StoreProducts,
		"product_tags":   report.ProductTags,
	}
	if report.Total() > 0 {
		logger.Warn("Dangling association rows found", fields)
	} else {
		logger.Debug("No dangling association rows", fields)
	}
	return report, nil
}

// LastReport returns the report of the most recent successful run.
func (s *AuditScheduler) LastReport() service.DanglingReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Stop 스케줄러 중지
// 실행 중인 작업이 끝날 때까지 기다린다
func (s *AuditScheduler) Stop() {
	if !s.Enabled() {
		return
	}
	logger.Info("Stopping association audit scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Association audit scheduler stopped")
}
