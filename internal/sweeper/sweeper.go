package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"campus-parking/config"
	"campus-parking/internal/cache"
	"campus-parking/internal/model"
	"campus-parking/internal/realtime"
	"campus-parking/internal/repository"
	"campus-parking/internal/service"
	apperrors "campus-parking/pkg/app_errors"
	"campus-parking/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Sweeper 逾期掃描器：找出超過寬限期還沒報到的預約，逐筆在單一交易內
// 作廢預約、釋放車位或區段名額、扣等待時數，commit 後才廣播事件。
// running 旗標掛在元件上而不是全域狀態，測試可以決定性地模擬重疊的 tick
type Sweeper struct {
	db              service.DB
	reservationRepo repository.ReservationRepository
	spotRepo        repository.SpotRepository
	sectionRepo     repository.SectionRepository
	billing         service.BillingService
	publisher       realtime.Publisher
	availability    cache.SectionAvailabilityCache

	gracePeriod time.Duration
	interval    time.Duration
	txTimeout   time.Duration

	running atomic.Bool
}

func New(
	cfg config.SweepConfig,
	db service.DB,
	reservationRepo repository.ReservationRepository,
	spotRepo repository.SpotRepository,
	sectionRepo repository.SectionRepository,
	billing service.BillingService,
	publisher realtime.Publisher,
	availability cache.SectionAvailabilityCache,
) *Sweeper {
	return &Sweeper{
		db:              db,
		reservationRepo: reservationRepo,
		spotRepo:        spotRepo,
		sectionRepo:     sectionRepo,
		billing:         billing,
		publisher:       publisher,
		availability:    availability,
		gracePeriod:     cfg.GracePeriod,
		interval:        cfg.Interval,
		txTimeout:       cfg.TxTimeout,
	}
}

// Start 啟動定時掃描；立即先掃一次，行程重啟才不會讓過期預約多等一整個 interval
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		s.RunSweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunSweep(ctx)
			}
		}
	}()
}

// RunSweep 一輪掃描。上一輪還在跑時直接略過這個 tick：不排隊、不重疊，
// 單行程內同時最多一輪掃描
func (s *Sweeper) RunSweep(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	defer s.running.Store(false)

	log := logger.WithComponent("sweeper")

	now := time.Now().UTC()
	expired, err := s.reservationRepo.FindExpired(ctx, now.Add(-s.gracePeriod))
	if err != nil {
		log.Error("failed to select expired reservations", zap.Error(err))
		return
	}

	for _, reservation := range expired {
		if ctx.Err() != nil {
			return
		}

		// 單筆失敗只記 log 不重試，預約維持 reserved，下一輪 tick 會再被撈到（自癒）
		if err := s.expireOne(ctx, reservation); err != nil {
			log.Warn("failed to expire reservation, will retry next tick",
				zap.Int("reservation_id", reservation.ID), zap.Error(err))
		}
	}
}

// expireOne 一筆預約一條交易：作廢、釋放、扣款全有或全無
func (s *Sweeper) expireOne(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	updated, err := s.reservationRepo.UpdateStatusWithLock(ctx, tx, reservation.ID, model.BookingStatusInvalid, now)
	if err != nil {
		// 掃描與報到搶同一把行鎖；報到先贏就放過這筆
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			return nil
		}
		return err
	}

	if updated.SpotID != nil {
		if err := s.spotRepo.UpdateStatus(ctx, tx, *updated.SpotID, model.SpotStatusAvailable); err != nil {
			return err
		}
	} else if updated.SectionID != nil {
		if err := s.sectionRepo.AdjustCounters(ctx, tx, *updated.SectionID, -1, 0, 0); err != nil {
			return err
		}
	}

	chargeHours := updated.WaitHours(now)
	result, err := s.billing.ChargeUser(ctx, tx, updated.UserID, chargeHours)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logger.WithComponent("sweeper").Info("reservation expired",
		zap.Int("reservation_id", updated.ID),
		zap.Int("user_id", updated.UserID),
		zap.Float64("wait_hours", chargeHours),
		zap.Float64("penalty_hours", result.PenaltyHours),
		zap.Float64("new_balance", result.NewBalance),
	)

	s.publishExpired(updated)
	return nil
}

// publishExpired commit 之後才廣播；訂閱端永遠不會看到還可能回滾的狀態
func (s *Sweeper) publishExpired(reservation *model.Reservation) {
	event := realtime.Event{
		Type:          realtime.EventReservationUpdated,
		AreaID:        reservation.AreaID,
		ReservationID: reservation.ID,
		Status:        string(model.BookingStatusInvalid),
		Source:        realtime.SourceSweeper,
	}
	if reservation.SpotID != nil {
		event.SpotID = *reservation.SpotID
	}
	if reservation.SectionID != nil {
		event.SectionID = *reservation.SectionID
	}

	s.publisher.Publish(realtime.UserRoom(reservation.UserID), event)
	s.publisher.Publish(realtime.ReservationRoom(reservation.ID), event)

	if reservation.SpotID != nil {
		s.publisher.Publish(realtime.AreaRoom(reservation.AreaID), realtime.Event{
			Type:   realtime.EventSpotsUpdated,
			AreaID: reservation.AreaID,
			SpotID: *reservation.SpotID,
			Status: string(model.SpotStatusAvailable),
			Source: realtime.SourceSweeper,
		})
	} else if reservation.SectionID != nil {
		s.publisher.Publish(realtime.AreaRoom(reservation.AreaID), realtime.Event{
			Type:      realtime.EventCapacityUpdated,
			AreaID:    reservation.AreaID,
			SectionID: *reservation.SectionID,
			Status:    string(model.SectionStatusAvailable),
			Source:    realtime.SourceSweeper,
		})
		s.refreshAvailability(*reservation.SectionID)
	}
}

func (s *Sweeper) refreshAvailability(sectionID int) {
	if s.availability == nil {
		return
	}

	ctx := context.Background()
	section, err := s.sectionRepo.FindByID(ctx, sectionID)
	if err != nil {
		logger.WithComponent("sweeper").Warn("availability refresh read failed",
			zap.Int("section_id", sectionID), zap.Error(err))
		return
	}
	if err := s.availability.Refresh(ctx, section); err != nil {
		logger.WithComponent("sweeper").Warn("availability refresh failed",
			zap.Int("section_id", sectionID), zap.Error(err))
	}
}
