package scheduler

import (
	"time"

	"github.com/ikkim/printmoa-backend/internal/app/service"
	"github.com/ikkim/printmoa-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// FlashSaleScheduler 특가 기간 자동 적용/해제 스케줄러
type FlashSaleScheduler struct {
	cron             *cron.Cron
	flashSaleService service.FlashSaleService
	spec             string
}

// NewFlashSaleScheduler 특가 스케줄러 생성
func NewFlashSaleScheduler(flashSaleService service.FlashSaleService, spec string) *FlashSaleScheduler {
	return &FlashSaleScheduler{
		cron:             cron.New(),
		flashSaleService: flashSaleService,
		spec:             spec,
	}
}

// Start 스케줄러 시작
func (s *FlashSaleScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.flashSaleService.ApplyWindows(time.Now()); err != nil {
			logger.Error("Flash sale sweep failed", err)
			return
		}
	})

	if err != nil {
		logger.Error("Failed to add cron job for flash sale sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Flash sale scheduler started", map[string]interface{}{
		"spec": s.spec,
	})

	return nil
}

// Stop 스케줄러 중지
func (s *FlashSaleScheduler) Stop() {
	logger.Info("Stopping flash sale scheduler...", nil)
	s.cron.Stop()
	logger.Info("Flash sale scheduler stopped", nil)
}
